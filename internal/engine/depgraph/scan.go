package depgraph

import "regexp"

// importPattern matches the specifier of static imports, re-exports,
// side-effect imports and dynamic imports. It is a best-effort static
// scan, not a module resolver; specifiers built from expressions are
// invisible to it.
var importPattern = regexp.MustCompile(
	`(?:import|export)\s+[^'"]*?\s+from\s+['"]([^'"]+)['"]` +
		`|import\s*\(\s*['"]([^'"]+)['"]\s*\)` +
		`|import\s+['"]([^'"]+)['"]` +
		`|require\s*\(\s*['"]([^'"]+)['"]\s*\)`,
)

// extractSpecifiers returns every import specifier found in the text.
func extractSpecifiers(text string) []string {
	var specifiers []string
	for _, match := range importPattern.FindAllStringSubmatch(text, -1) {
		for _, group := range match[1:] {
			if group != "" {
				specifiers = append(specifiers, group)
				break
			}
		}
	}
	return specifiers
}
