// Package datapeek is a numeric analysis engine for messy tabular data.
//
// It loads heterogeneous records (strings, numbers, missing markers), infers
// which columns are numeric, and runs descriptive statistics and a set of
// classic fitting algorithms over them: ordinary least squares and ridge
// regression with train/test splits and k-fold cross-validation, batch
// gradient-descent logistic regression, Lloyd's k-means, and principal
// component analysis via power iteration.
//
// # Packages
//
//   - dataset: value model, missingness, lossy numeric coercion, type inference
//   - stats: column summaries, Pearson correlation, analysis suggestions
//   - matrix: dense kernel with Gauss-Jordan inversion
//   - linear, logistic, cluster, decomposition: the fitting algorithms
//   - metrics: R², RMSE, MSE, accuracy
//   - cmd/datapeek: CLI that renders analyses as YAML or JSON reports
//
// # Quick Start
//
//	ds, err := ingest.ReadFile("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model, err := linear.Fit(ds, "price", []string{"area", "rooms"},
//	    linear.WithRidge(0.5), linear.WithTestFraction(0.2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Coefficients, model.Test.R2)
//
// Rows whose selected columns do not parse as numbers are excluded from fits
// and counted on the returned model; only a dataset with no usable rows at
// all produces an error.
package datapeek
