package paymentprovider

var builtinCountries = []Country{
	{Code: "SN", Name: "Sénégal"},
	{Code: "CI", Name: "Côte d'Ivoire"},
	{Code: "ML", Name: "Mali"},
	{Code: "BF", Name: "Burkina Faso"},
	{Code: "BJ", Name: "Bénin"},
	{Code: "TG", Name: "Togo"},
	{Code: "NE", Name: "Niger"},
	{Code: "GN", Name: "Guinée"},
	{Code: "GM", Name: "Gambia"},
	{Code: "CM", Name: "Cameroun"},
	{Code: "GA", Name: "Gabon"},
	{Code: "CG", Name: "Congo"},
	{Code: "CD", Name: "RD Congo"},
	{Code: "NG", Name: "Nigeria"},
	{Code: "GH", Name: "Ghana"},
	{Code: "SL", Name: "Sierra Leone"},
	{Code: "KE", Name: "Kenya"},
	{Code: "UG", Name: "Uganda"},
	{Code: "TZ", Name: "Tanzania"},
	{Code: "RW", Name: "Rwanda"},
	{Code: "ZM", Name: "Zambia"},
	{Code: "ZA", Name: "South Africa"},
	{Code: "MA", Name: "Maroc"},
	{Code: "EG", Name: "Egypt"},
}

var (
	methodOrangeMoney  = PaymentMethod{ID: "orange_money", Name: "Orange Money", Icon: "smartphone"}
	methodFreeMoney    = PaymentMethod{ID: "free_money", Name: "Free Money", Icon: "smartphone"}
	methodWave         = PaymentMethod{ID: "wave_mobile", Name: "Wave", Icon: "smartphone"}
	methodMTNMoMo      = PaymentMethod{ID: "mtn_momo", Name: "MTN Mobile Money", Icon: "smartphone"}
	methodMoovMoney    = PaymentMethod{ID: "moov_money", Name: "Moov Money", Icon: "smartphone"}
	methodMobileMoney  = PaymentMethod{ID: "mobile_money", Name: "Mobile Money", Icon: "smartphone"}
	methodMPesa        = PaymentMethod{ID: "mpesa_mobile_money", Name: "M-Pesa", Icon: "smartphone"}
	methodCard         = PaymentMethod{ID: "card", Name: "Carte bancaire", Icon: "credit-card"}
	methodBankTransfer = PaymentMethod{ID: "bank_transfer", Name: "Virement bancaire", Icon: "building-bank"}
	methodBankAccount  = PaymentMethod{ID: "bank_account", Name: "Compte bancaire", Icon: "building-bank"}
	methodUSSD         = PaymentMethod{ID: "ussd", Name: "USSD", Icon: "hash"}
	methodCashPickup   = PaymentMethod{ID: "cash_pickup", Name: "Retrait en espèces", Icon: "banknote"}
)

var builtinProviders = []PaymentProvider{
	{
		ID:                 "paydunya",
		Name:               "PayDunya",
		Logo:               "/images/providers/paydunya.png",
		SupportedCountries: []string{"SN", "CI", "BJ", "TG", "ML", "BF"},
		SupportedMethods:   []PaymentMethod{methodOrangeMoney, methodFreeMoney, methodWave, methodCard},
	},
	{
		ID:                 "cinetpay",
		Name:               "CinetPay",
		Logo:               "/images/providers/cinetpay.png",
		SupportedCountries: []string{"CI", "SN", "CM", "BF", "ML", "TG", "BJ", "GN", "NE", "CD"},
		SupportedMethods:   []PaymentMethod{methodMobileMoney, methodCard},
	},
	{
		ID:                 "flutterwave",
		Name:               "Flutterwave",
		Logo:               "/images/providers/flutterwave.png",
		SupportedCountries: []string{"NG", "GH", "KE", "UG", "TZ", "RW", "ZM", "ZA", "CM", "CI", "SN"},
		SupportedMethods:   []PaymentMethod{methodCard, methodBankTransfer, methodMobileMoney, methodUSSD},
	},
	{
		ID:                 "paystack",
		Name:               "Paystack",
		Logo:               "/images/providers/paystack.png",
		SupportedCountries: []string{"NG", "GH", "ZA", "KE", "CI"},
		SupportedMethods:   []PaymentMethod{methodCard, methodBankAccount, methodBankTransfer, methodUSSD},
	},
	{
		ID:                 "orange_money",
		Name:               "Orange Money",
		Logo:               "/images/providers/orange-money.png",
		SupportedCountries: []string{"SN", "CI", "ML", "BF", "GN", "CM", "NE", "CD", "SL", "MA", "EG"},
		SupportedMethods:   []PaymentMethod{methodOrangeMoney},
	},
	{
		ID:                 "mtn_momo",
		Name:               "MTN MoMo",
		Logo:               "/images/providers/mtn-momo.png",
		SupportedCountries: []string{"CI", "CM", "GH", "UG", "ZM", "RW", "SL"},
		SupportedMethods:   []PaymentMethod{methodMTNMoMo},
	},
	{
		ID:                 "moov_money",
		Name:               "Moov Money",
		Logo:               "/images/providers/moov-money.png",
		SupportedCountries: []string{"CI", "BJ", "TG", "BF", "ML", "NE", "GA"},
		SupportedMethods:   []PaymentMethod{methodMoovMoney},
	},
	{
		ID:                 "wave",
		Name:               "Wave",
		Logo:               "/images/providers/wave.png",
		SupportedCountries: []string{"SN", "CI", "ML", "BF", "GM", "UG"},
		SupportedMethods:   []PaymentMethod{methodWave},
	},
	{
		ID:                 "mpesa",
		Name:               "M-Pesa",
		Logo:               "/images/providers/mpesa.png",
		SupportedCountries: []string{"KE", "TZ", "CD", "GH", "EG"},
		SupportedMethods:   []PaymentMethod{methodMPesa},
	},
	{
		ID:                 "western_union",
		Name:               "Western Union",
		Logo:               "/images/providers/western-union.png",
		SupportedCountries: []string{"SN", "CI", "ML", "BF", "BJ", "TG", "NE", "GN", "CM", "GA", "CG", "CD", "NG", "GH", "KE", "MA", "EG"},
		SupportedMethods:   []PaymentMethod{methodCashPickup, methodBankTransfer},
	},
	{
		ID:                 "express_cash",
		Name:               "Express Cash",
		Logo:               "/images/providers/express-cash.png",
		SupportedCountries: []string{"SN", "CI", "ML", "BF", "GN", "CM", "GA", "CG"},
		SupportedMethods:   []PaymentMethod{methodCashPickup, methodBankTransfer},
	},
}

// DefaultCatalog returns the tables compiled into the binary.
func DefaultCatalog() *Catalog {
	return NewCatalog(builtinCountries, builtinProviders)
}
