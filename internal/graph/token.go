package graph

import "strings"

// DefaultVersion is reported for tokens that carry no recognised version separator.
const DefaultVersion = "1.0.0"

// Token identifies one version of one package, e.g. "flask==2.0.0" or "flask-2.0.0".
type Token string

// Parse splits a token into package name and version.
//
// Precedence:
//  1. name-version: the last hyphen splits the token into two non-empty parts
//     and the suffix contains a dot.
//  2. name==version: "==" splits the token into exactly two non-empty parts.
//  3. otherwise the whole token is the name and the version is DefaultVersion.
//
// The hyphen form wins even when the token also contains "==", so
// "my-pkg==1.0" parses as ("my", "pkg==1.0"). Scenario data relies on this.
func Parse(token Token) (name, version string) {
	name, version, _ = parse(string(token))
	return name, version
}

func parse(s string) (name, version string, explicit bool) {
	if i := strings.LastIndex(s, "-"); i > 0 && i < len(s)-1 {
		if suffix := s[i+1:]; strings.Contains(suffix, ".") {
			return s[:i], suffix, true
		}
	}
	if parts := strings.Split(s, "=="); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1], true
	}
	return s, DefaultVersion, false
}

func (t Token) Name() string {
	name, _ := Parse(t)
	return name
}

func (t Token) Version() string {
	_, version := Parse(t)
	return version
}

// Label renders the token for formula text: the name immediately followed by
// the version, e.g. "flask2.0.0". Labels can collide and must not be used as keys.
func (t Token) Label() string {
	name, version, explicit := parse(string(t))
	if !explicit {
		return string(t)
	}
	return name + version
}

// Display renders the token the way package buttons show it: "flask v2.0.0".
func (t Token) Display() string {
	name, version := Parse(t)
	return name + " v" + version
}

func (t Token) String() string {
	return string(t)
}
