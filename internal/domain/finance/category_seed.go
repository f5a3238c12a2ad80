package finance

// CategorySeed is a default cash book category
type CategorySeed struct {
	Name        string
	Description string
	Type        CategoryType
}

// DefaultCategories returns the garments factory cash book categories
func DefaultCategories() []CategorySeed {
	return []CategorySeed{
		// money in
		{"Loan A/C Chairman", "Chairman loan account credit", CategoryTypeCredit},
		{"Received: Urbo ltd", "Payments received from Urbo ltd", CategoryTypeCredit},
		{"Loan A/C Chairman by Bashar", "Chairman loan account credit by Bashar", CategoryTypeCredit},
		{"Received: Kafit Gallary", "Payments received from Kafit Gallary", CategoryTypeCredit},
		{"Received: Brooklyn BD", "Payments received from Brooklyn BD", CategoryTypeCredit},
		{"Received: Adl", "Payments received from ADL", CategoryTypeCredit},
		{"Speed Collection", "Speed collection income", CategoryTypeCredit},
		{"Miscellaneous Income", "Other miscellaneous income", CategoryTypeCredit},

		// money out
		{"Loan Debit", "Loan payments and debit transactions", CategoryTypeDebit},
		{"Subcontract worker bill", "Subcontract worker payments", CategoryTypeDebit},
		{"Convence", "Conveyance and transportation expenses", CategoryTypeDebit},
		{"Fabric- Purchase", "Fabric purchase expenses", CategoryTypeDebit},
		{"Accessories Bill", "Accessories and materials purchase", CategoryTypeDebit},
		{"Office Maintance", "Office maintenance expenses", CategoryTypeDebit},
		{"Factory Maintance", "Factory maintenance expenses", CategoryTypeDebit},
		{"Tiffin Bill", "Tiffin and meal expenses", CategoryTypeDebit},
		{"Carriage Bill", "Carriage and transportation bills", CategoryTypeDebit},
		{"Entertainment Bill", "Entertainment and hospitality expenses", CategoryTypeDebit},
		{"Machine- Purchase", "Machine and equipment purchase", CategoryTypeDebit},
		{"Electric Bill", "Electricity bills and charges", CategoryTypeDebit},
		{"Cons labour wages", "Construction labor wages", CategoryTypeDebit},
		{"Furniture & Fittings", "Furniture and fittings purchase", CategoryTypeDebit},
		{"Factory Papers", "Factory documentation and paperwork expenses", CategoryTypeDebit},
		{"SubContract Bill", "Subcontract service bills", CategoryTypeDebit},
		{"Advance Salary", "Advance salary payments", CategoryTypeDebit},
		{"Donation Inspection", "Donation and inspection fees", CategoryTypeDebit},
		{"Machine spare parts", "Machine spare parts and maintenance", CategoryTypeDebit},
		{"Salary A/C", "Regular salary payments", CategoryTypeDebit},
		{"Lunch bill", "Lunch expenses", CategoryTypeDebit},
		{"Dinner bill", "Dinner expenses", CategoryTypeDebit},
		{"bkash charge", "bKash transaction charges", CategoryTypeDebit},
		{"breakfast bill", "Breakfast expenses", CategoryTypeDebit},
		{"Internet bill", "Internet service charges", CategoryTypeDebit},
		{"Night bill", "Night shift expenses", CategoryTypeDebit},
		{"Wash bill", "Washing and cleaning expenses", CategoryTypeDebit},
		{"Dying bill", "Dyeing process expenses", CategoryTypeDebit},
		{"Embroderiy Bill", "Embroidery work expenses", CategoryTypeDebit},
		{"Cons Materials", "Construction materials", CategoryTypeDebit},
		{"Electric Item", "Electrical items and equipment", CategoryTypeDebit},
		{"Mobile Recharge", "Mobile phone recharge expenses", CategoryTypeDebit},
		{"Print Bill", "Printing services expenses", CategoryTypeDebit},
		{"Shipment Bill", "Shipment and delivery expenses", CategoryTypeDebit},
		{"Chemical Purchase", "Chemical and raw material purchase", CategoryTypeDebit},
		{"Carriage Out word", "Outward carriage expenses", CategoryTypeDebit},
		{"Carriage In word", "Inward carriage expenses", CategoryTypeDebit},
		{"Donation & Subscription", "Donations and subscription fees", CategoryTypeDebit},
		{"Interest Service Charge", "Interest and service charges", CategoryTypeDebit},
		{"Fuel & Lubricants", "Fuel and lubricant expenses", CategoryTypeDebit},
		{"Factory Rent", "Factory rental expenses", CategoryTypeDebit},
		{"Remunaration", "Remuneration and compensation", CategoryTypeDebit},
		{"Mobile Bill", "Mobile phone bills", CategoryTypeDebit},
		{"Printing & Stationary", "Printing and stationery expenses", CategoryTypeDebit},
		{"Purchase Local ( Paper )", "Local paper purchase", CategoryTypeDebit},
		{"Security Service Charge", "Security service charges", CategoryTypeDebit},
		{"VAT", "VAT and tax payments", CategoryTypeDebit},
	}
}
