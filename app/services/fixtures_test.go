package services_test

import "github.com/shashiranjanraj/zaika/app/models"

func addressFixture(country string) models.Address {
	return models.Address{
		HouseName: "Rose Villa",
		Street:    "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		ZipCode:   "560001",
		Country:   country,
	}
}

func itemsFixture() []models.OrderItem {
	return []models.OrderItem{
		{Name: "Paneer Tikka", Price: 249, Quantity: 2},
		{Name: "Butter Naan", Price: 49, Quantity: 4},
	}
}
