// Package library turns library loan-list CSV exports into LibraryBook records.
//
// Two layouts are understood:
//
//   - the Decalog export: exactly three columns "État", "Titre du document"
//     and "Informations". Titles are not escaped by the exporter, so rows with
//     more than three cells are repaired before parsing. Authors, overdue state
//     and the expected return date are extracted from the free-text cells.
//   - any other export that has a column whose header starts with "titre" or
//     "title". Only the title is kept.
//
// Each file is parsed on its own so a broken file never hides the books of the
// other files:
//
//	results := library.ParseFiles(ctx, files, library.DefaultOptions())
//	for _, r := range results {
//		if r.Err != nil {
//			log.Printf("file %s failed: %v", r.Name, r.Err)
//		}
//	}
//	books := library.Merge(results, library.DefaultOptions())
package library
