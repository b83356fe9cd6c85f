package access

func testCatalog() []ModuleDefinition {
	return []ModuleDefinition{
		{
			Key:  "cadastro",
			Name: "Cadastro",
			Icon: "users",
			SubModules: []SubModuleDefinition{
				{Key: "usuarios", Name: "Usuários"},
				{Key: "clientes", Name: "Clientes"},
				{Key: "fornecedores", Name: "Fornecedores"},
			},
		},
		{
			Key:  "comercial",
			Name: "Comercial",
			Icon: "shopping-cart",
			SubModules: []SubModuleDefinition{
				{Key: "pedidos", Name: "Pedidos"},
				{Key: "emprestimos", Name: "Empréstimos"},
			},
		},
		{
			Key:  "estoque",
			Name: "Estoque",
			Icon: "package",
			SubModules: []SubModuleDefinition{
				{Key: "posicao", Name: "Posição"},
				{Key: "movimentacoes", Name: "Movimentações"},
			},
		},
		{
			Key:  "rh",
			Name: "RH",
			Icon: "id-card",
			SubModules: []SubModuleDefinition{
				{Key: "colaboradores", Name: "Colaboradores"},
			},
		},
	}
}

func def(key string) ModuleDefinition {
	d, _ := findDefinition(testCatalog(), key)
	return d
}
