// Package deck manages converted topic sets on disk.
//
// Each topic is stored as two flat files in the build directory, the JSON
// card document and the Quizlet TSV export, next to a topics.json index:
//
//	build/
//	  python.json
//	  python.tsv
//	  topics.json   {"topics": ["python"]}
package deck
