package controllers

import "brickbill-backend/stores"

var reg *stores.Registry

// Init hands the store registry to the handler layer. Called once from main.
func Init(r *stores.Registry) {
	reg = r
}
