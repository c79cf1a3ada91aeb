// Package utils provides common utility functions for the media sync service.
// It includes helper functions for type conversion used by the CSV product
// importer, where every cell arrives as a string.
package utils
