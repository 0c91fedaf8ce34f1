package weft

// release is the semantic version of this tree, GitCommit is set with
//
//	-ldflags "-X github.com/contribute-dao/weft.GitCommit=$(git rev-parse --short HEAD)"
const release = "v0.1.0-dev"

var GitCommit = ""

// Version is reported by ABCI Info and `weftd version`.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
