package rejectlist

// Blocked card BIN prefixes (first 6 digits, matched as strings, no
// numeric parsing). Mostly prepaid/gift ranges the programs do not
// accept. Matching is exact-prefix: the card's first 6 digits must
// equal an entry.

// PSOnlineBINs: the MDI (PSOnline) pre-flight reject table.
func PSOnlineBINs() *Set {
	return NewSet(
		"400022", "400344", "400619", "400953", "401532", "402018",
		"402087", "402944", "403163", "403446", "403784", "404038",
		"404162", "404836", "405482", "405524", "406032", "406049",
		"406095", "406498", "407220", "407221", "408104", "408540",
		"409758", "410040", "410064", "410846", "411079", "411111",
		"411238", "411360", "411507", "411568", "411770", "412055",
		"412185", "413444", "414088", "414397", "414709", "414720",
		"415158", "415417", "415976", "416832", "417021", "418953",
		"419002", "420132", "420767", "421783", "422957", "423223",
		"423766", "424631", "425131", "425628", "426428", "426684",
		"427082", "428191", "428998", "430023", "430665", "431196",
		"431307", "432727", "433718", "434256", "435142", "435880",
		"436618", "437303", "438857", "439829", "440230", "440393",
		"441104", "441712", "442756", "443161", "444413", "445100",
		"446053", "446542", "447227", "448223", "449209", "450250",
		"451440", "452099", "453245", "454313", "455560", "456628",
		"457398", "458415", "459319", "460024", "461046", "462161",
		"463829", "464018", "465923", "466992", "468013", "469359",
		"470132", "471574", "472728", "473702", "474165", "475056",
		"476142", "477239", "478200", "479126", "480012", "481582",
		"482812", "483312", "484718", "485953", "486732", "487900",
		"488893", "489504", "490097", "491268", "492181", "493402",
		"494344", "495590", "496590", "497856", "498503", "499804",
		"510039", "511332", "511922", "512107", "513547", "514021",
		"515549", "516648", "517148", "518725", "519282", "520266",
		"521853", "522481", "523081", "524366", "525363", "526219",
		"527515", "528546", "529062", "530680", "531257", "532839",
		"533248", "534859", "535456", "536355", "537811", "538710",
		"539186", "540324", "541413", "542418", "543603", "544768",
		"545958", "546626", "547080", "548042", "549110", "550806",
		"551129", "552433", "553732", "554869", "555426", "556956",
		"557843", "558158", "559350",
	)
}

// SublyticsBINs: the HPP (Sublytics) reject list, checked after the
// aggregated payload validation passes.
func SublyticsBINs() *Set {
	return NewSet(
		"400022", "410846", "411111", "414720", "421783", "426428",
		"435142", "440393", "444413", "451440", "461046", "473702",
		"481582", "490097", "498503", "511922", "514021", "522481",
		"530680", "539186", "544768", "551129", "557843",
	)
}
