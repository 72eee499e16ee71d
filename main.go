package main

import "github.com/firmsite/site-api/cmd"

// @title           Firm Site API
// @version         1.0.0
// @description     Content, search, language and newsletter API for the law firm website
// @contact.name    API Support
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
