// Package products imports product catalogs from WooCommerce-style CSV
// exports.
//
// An import runs in two passes over the parsed rows: the first creates every
// SKU the catalog has never seen, the second updates every SKU that predates
// the import. The split keeps the reported counts honest: importing a file of
// new products reports them all as created, and re-importing the same file
// reports them all as updated. Products are never deleted by an import, and
// rows without a SKU are skipped and counted.
//
// The feature exposes a single endpoint, POST /products/import, accepting the
// CSV either as a multipart upload under the "file" field or as the raw
// request body. Column order in the CSV is free and matched by header name.
package products
