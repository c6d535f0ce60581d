package seed

import "imovelmatch/models"

// DemoProperties is a small built-in listing set for local runs and demos.
func DemoProperties() []models.Property {
	return []models.Property{
		{
			PropertyID: "curitiba_1", Price: 550000, Size: 120,
			Bedrooms: 2, Bathrooms: 2, GarageSpots: 1,
			Street: "Rua das Flores", Neighborhood: "Centro", City: "Curitiba",
			Latitude: -25.4284, Longitude: -49.2733,
		},
		{
			PropertyID: "abcfoo42", Price: 750000, Size: 150,
			Bedrooms: 3, Bathrooms: 2, GarageSpots: 2,
			Street: "Avenida Principal", Neighborhood: "Batel", City: "Curitiba",
			Latitude: -25.4411, Longitude: -49.2931,
		},
		{
			PropertyID: "xyzbar99", Price: 850000, Size: 180,
			Bedrooms: 4, Bathrooms: 3, GarageSpots: 2,
			Street: "Rua da Praia", Neighborhood: "Beira Mar", City: "Florianópolis",
			Latitude: -27.5954, Longitude: -48.5480,
		},
		{
			PropertyID: "sp_modern_7", Price: 980000, Size: 95,
			Bedrooms: 2, Bathrooms: 2, GarageSpots: 1,
			Street: "Rua Augusta", Neighborhood: "Consolação", City: "São Paulo",
			Latitude: -23.5537, Longitude: -46.6525,
		},
		{
			PropertyID: "poa_family_3", Price: 620000, Size: 140,
			Bedrooms: 3, Bathrooms: 2, GarageSpots: 2,
			Street: "Avenida Ipiranga", Neighborhood: "Jardim Botânico", City: "Porto Alegre",
			Latitude: -30.0570, Longitude: -51.1770,
		},
	}
}
