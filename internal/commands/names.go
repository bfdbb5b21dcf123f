package commands

import (
	"crypto/rand"
	"math/big"
)

var nameVerbs = []string{
	"fix", "tidy", "try", "spike", "rework", "polish", "trim", "wire",
	"port", "probe", "patch", "tune",
}

var nameNouns = []string{
	"parser", "cache", "layout", "walker", "loader", "prompt", "index",
	"watcher", "scanner", "buffer", "config", "router",
}

// SuggestBranchName returns a random verb-noun branch name.
func SuggestBranchName() string {
	return pick(nameVerbs) + "-" + pick(nameNouns)
}

func pick(list []string) string {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return list[0]
	}
	return list[idx.Int64()]
}
