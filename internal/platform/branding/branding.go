// Package branding holds the product name shown to users and clients.
package branding

// AppName is the product name.
const AppName = "dicebag"
