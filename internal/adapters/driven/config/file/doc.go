// Package file provides the file-based configuration store.
//
// Settings live in ~/.ncosearch/config.toml as TOML tables, for example:
//
//	[api]
//	base_url = "http://localhost:8000"
//	search_method = "post"
//
//	[voice]
//	command = "whisper-stream"
package file
