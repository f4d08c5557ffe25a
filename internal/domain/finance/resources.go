package finance

import "idms/internal/wiredate"

// Resources lists every expense collection in dashboard order.
var Resources = []Resource{
	{Name: "rent", Label: "Rent", Table: "rent_expenses", Kind: KindFixed, DateCodec: wiredate.Array},
	{Name: "electric-bills", Label: "Electric Bills", Table: "electric_bills", Kind: KindFixed, DateCodec: wiredate.Array},
	{Name: "internet-bills", Label: "Internet Bills", Table: "internet_bills", Kind: KindFixed, DateCodec: wiredate.Array},
	{Name: "sim-bills", Label: "SIM Bills", Table: "sim_bills", Kind: KindFixed, DateCodec: wiredate.Array},
	{Name: "water-bills", Label: "Water Bills", Table: "water_bills", Kind: KindFixed, DateCodec: wiredate.Array},
	{Name: "salaries", Label: "Salaries", Table: "salaries", Kind: KindFixed, DateCodec: wiredate.Array},
	{Name: "travel", Label: "Travel", Table: "travel_expenses", Kind: KindVariable, DateCodec: wiredate.Array},
	{Name: "expo-advertisements", Label: "Expo Advertisements", Table: "expo_advertisements", Kind: KindVariable, DateCodec: wiredate.ISO},
	{Name: "incentives", Label: "Incentives", Table: "incentives", Kind: KindVariable, DateCodec: wiredate.Array, HasRecipient: true},
	{Name: "commissions", Label: "Commissions", Table: "commissions", Kind: KindVariable, DateCodec: wiredate.Compact, HasRecipient: true},
}

func Lookup(name string) (Resource, bool) {
	for _, res := range Resources {
		if res.Name == name {
			return res, true
		}
	}
	return Resource{}, false
}
