package model

// Canonical categories shown in the UI. The column is an open string, so
// unknown values are stored as-is.
var Categories = []string{
	"Outdoors",
	"Tools",
	"Kitchen",
	"Garden/Yard",
	"Electronics",
	"Recreation",
	"Travel",
	"Clothing",
	"Household",
	"Other",
}

// PlaceholderImageURL is used for items listed without a photo.
const PlaceholderImageURL = "/images/placeholder-item.png"
