// Package main provides the entry point for the sitegrade CLI.
//
// sitegrade fetches a web page, runs weighted presence checks in five
// categories and prints a score out of 100 with a letter grade.
//
// Usage:
//
//	sitegrade evaluate [url...]
//	sitegrade history [url]
//
// See --help for all available options.
package main

func main() {
	Execute()
}
