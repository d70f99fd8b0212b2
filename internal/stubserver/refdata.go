package stubserver

import "bidbazaar/internal/models"

// Categories is the fixed list served by /api/categories
var Categories = []models.AuctionCategory{
	{Value: "home_repair", Label: "Home Repair"},
	{Value: "cleaning", Label: "Cleaning"},
	{Value: "tutoring", Label: "Tutoring"},
	{Value: "delivery", Label: "Delivery"},
	{Value: "design", Label: "Design & Creative"},
	{Value: "tech_support", Label: "Tech Support"},
	{Value: "beauty", Label: "Beauty & Wellness"},
	{Value: "automotive", Label: "Automotive"},
	{Value: "other", Label: "Other"},
}

// Regions is the fixed list served by /api/states
var Regions = []models.Region{
	{Value: "andhra-pradesh", Label: "Andhra Pradesh"},
	{Value: "assam", Label: "Assam"},
	{Value: "bihar", Label: "Bihar"},
	{Value: "delhi", Label: "Delhi"},
	{Value: "goa", Label: "Goa"},
	{Value: "gujarat", Label: "Gujarat"},
	{Value: "haryana", Label: "Haryana"},
	{Value: "karnataka", Label: "Karnataka"},
	{Value: "kerala", Label: "Kerala"},
	{Value: "madhya-pradesh", Label: "Madhya Pradesh"},
	{Value: "maharashtra", Label: "Maharashtra"},
	{Value: "mumbai", Label: "Mumbai"},
	{Value: "odisha", Label: "Odisha"},
	{Value: "punjab", Label: "Punjab"},
	{Value: "rajasthan", Label: "Rajasthan"},
	{Value: "tamil-nadu", Label: "Tamil Nadu"},
	{Value: "telangana", Label: "Telangana"},
	{Value: "uttar-pradesh", Label: "Uttar Pradesh"},
	{Value: "west-bengal", Label: "West Bengal"},
}
