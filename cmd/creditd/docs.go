package main

// General API documentation for swaggo. Run `swag init -g cmd/creditd/docs.go -o docs` to regenerate.
//
// @title           creditd API
// @version         1.0
// @description     Credit approval predictions from a pre-trained classifier.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
