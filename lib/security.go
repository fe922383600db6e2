package lib

import "strings"

// IsSecureFileName checking the file name does not have some hacks in it
func IsSecureFileName(name string) bool {
	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, string('\\')) || strings.Contains(name, ":") {
		return false
	}
	return true
}

// IsKeyValueBlacklisted reports config keys whose values must never
// reach the logs.
func IsKeyValueBlacklisted(key string) bool {
	list := []string{
		"PASSWORD",
		"SECRET",
		"KEY",
		"WALLET",
	}

	key = strings.ToUpper(key)
	for _, term := range list {
		if strings.Contains(key, term) {
			return true
		}
	}

	return false
}
