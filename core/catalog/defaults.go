package catalog

import "backoffice-access/core/access"

var defaultModules = []access.ModuleDefinition{
	{Key: "administrativo", Name: "Administrativo", Icon: "building", SubModules: []access.SubModuleDefinition{
		{Key: "empresas", Name: "Empresas"},
		{Key: "filiais", Name: "Filiais"},
		{Key: "parametros", Name: "Parâmetros"},
	}},
	{Key: "cadastro", Name: "Cadastro", Icon: "users", SubModules: []access.SubModuleDefinition{
		{Key: "usuarios", Name: "Usuários"},
		{Key: "clientes", Name: "Clientes"},
		{Key: "fornecedores", Name: "Fornecedores"},
		{Key: "produtos", Name: "Produtos"},
		{Key: "equipamentos", Name: "Equipamentos"},
	}},
	{Key: "comercial", Name: "Comercial", Icon: "shopping-cart", SubModules: []access.SubModuleDefinition{
		{Key: "pedidos", Name: "Pedidos"},
		{Key: "orcamentos", Name: "Orçamentos"},
		{Key: "emprestimos", Name: "Empréstimos"},
		{Key: "devolucoes", Name: "Devoluções"},
	}},
	{Key: "estoque", Name: "Estoque", Icon: "package", SubModules: []access.SubModuleDefinition{
		{Key: "posicao", Name: "Posição"},
		{Key: "movimentacoes", Name: "Movimentações"},
		{Key: "inventario", Name: "Inventário"},
	}},
	{Key: "financeiro", Name: "Financeiro", Icon: "wallet", SubModules: []access.SubModuleDefinition{
		{Key: "contas_receber", Name: "Contas a receber"},
		{Key: "contas_pagar", Name: "Contas a pagar"},
		{Key: "fluxo_caixa", Name: "Fluxo de caixa"},
	}},
	{Key: "rh", Name: "Recursos Humanos", Icon: "id-card", SubModules: []access.SubModuleDefinition{
		{Key: "colaboradores", Name: "Colaboradores"},
		{Key: "ferias", Name: "Férias"},
		{Key: "ponto", Name: "Ponto"},
	}},
}

// DefaultModules returns a copy of the built-in back-office catalog.
func DefaultModules() []access.ModuleDefinition {
	return cloneModules(defaultModules)
}

func cloneModules(in []access.ModuleDefinition) []access.ModuleDefinition {
	out := make([]access.ModuleDefinition, len(in))
	for i, d := range in {
		out[i] = d
		out[i].SubModules = append([]access.SubModuleDefinition(nil), d.SubModules...)
	}
	return out
}
