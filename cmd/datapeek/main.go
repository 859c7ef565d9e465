// Command datapeek explores tabular data from the command line: column
// summaries, correlations, regression and classification fits, clustering and
// dimensionality reduction, all on top of the datapeek engine packages.
package main

func main() {
	Execute()
}
