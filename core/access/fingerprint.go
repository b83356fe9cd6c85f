package access

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint is a stable BLAKE2b-256 digest of the tree's JSON form. Two trees
// with the same modules in the same order share a fingerprint; nil and empty
// submodule lists are treated alike.
func Fingerprint(tree Tree) string {
	raw, err := json.Marshal(tree.Clone())
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
