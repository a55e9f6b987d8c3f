// Package repository handles all interactions with the database.
//
// It contains the MongoDB queries used to fetch and persist documents,
// abstracting driver details away from the service layer.
package repository
