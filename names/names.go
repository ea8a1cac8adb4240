// Package names parses the composite server-group naming convention
// <application>-<stack>-<detail>-v<sequence> used across cloud providers.
package names

import (
	"regexp"
	"strings"
)

var versionSuffix = regexp.MustCompile(`-v\d+$`)

// Name is the structured form of a composite resource identifier.
// Stack and Detail are empty when the identifier does not carry them.
type Name struct {
	Application string `json:"application"`
	Stack       string `json:"stack"`
	Detail      string `json:"detail"`
	Cluster     string `json:"cluster"`
}

// Parse splits an identifier into its naming parts. It never fails: a string
// with no delimiters parses to an application equal to the whole string.
// Cluster is the identifier with any trailing version suffix stripped.
func Parse(identifier string) Name {
	cluster := versionSuffix.ReplaceAllString(identifier, "")
	parts := strings.Split(cluster, "-")

	n := Name{
		Application: parts[0],
		Cluster:     cluster,
	}
	if len(parts) > 1 {
		n.Stack = parts[1]
	}
	if len(parts) > 2 {
		n.Detail = strings.Join(parts[2:], "-")
	}
	return n
}
