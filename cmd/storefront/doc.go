// Command storefront runs the shop and its maintenance tasks.
//
//	storefront serve              # start the HTTP server
//	storefront route:list         # list named routes
//	storefront migrate            # run pending migrations
//	storefront migrate:rollback   # roll back the last batch
//	storefront migrate:status
//	storefront seed               # admin account + sample catalogue
//	storefront user:promote EMAIL # grant admin
//	storefront user:demote EMAIL  # revoke admin
//
// Configuration comes from config/app.json, .env and the environment.
package main
