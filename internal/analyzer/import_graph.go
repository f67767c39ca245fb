package analyzer

import "github.com/ludo-technologies/jscan/domain"

// BuildImportGraph derives the node set of the project's import graph: every
// file analyzer.DetectUnusedExports/DetectUnusedExportedFunctions/
// DetectOrphanFiles should treat as reachable when resolving import
// specifiers, the union of files with parsed module info and files the
// caller already marked analyzed.
func BuildImportGraph(allModuleInfos map[string]*domain.ModuleInfo, analyzedFiles map[string]bool) map[string]bool {
	graph := make(map[string]bool, len(allModuleInfos)+len(analyzedFiles))
	for filePath := range analyzedFiles {
		graph[filePath] = true
	}
	for filePath := range allModuleInfos {
		graph[filePath] = true
	}
	return graph
}
