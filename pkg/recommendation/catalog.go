package recommendation

// amount holds the regular and the youth-pass value of a cost. Youth is zero when
// the pass does not change it.
type amount struct {
	regular int
	youth   int
}

func (a amount) pick(useYouthPass bool) int {
	if useYouthPass && a.youth > 0 {
		return a.youth
	}
	return a.regular
}

type breakdownItem struct {
	name   string
	amount amount
}

type catalogEntry struct {
	description      string
	items            []string
	dailyAmount      amount
	breakdown        []breakdownItem
	tips             []string
	recommendedSpots []string
}

var catalog = map[Interest]catalogEntry{
	Movie: {
		description: "BIFF and movie-related costs",
		items:       []string{"BIFF ticket", "Regular movie ticket", "Popcorn/drinks", "BIFF merchandise", "Program book"},
		dailyAmount: amount{15000, 13500},
		breakdown: []breakdownItem{
			{"BIFF ticket", amount{10000, 9000}},
			{"Popcorn/drinks", amount{8000, 0}},
			{"Merchandise/souvenirs", amount{5000, 0}},
		},
		tips: []string{
			"BIFF package tickets come with a 20% discount",
			"Buy drinks outside the theater to save",
			"The program book makes a good souvenir",
			"Consider on-site same-day tickets",
		},
		recommendedSpots: []string{"Busan Cinema Center", "CGV Centum City", "Lotte Cinema Busan Main"},
	},
	Restaurants: {
		description: "Tour of Busan's signature restaurants",
		items:       []string{"Dwaeji gukbap", "Milmyeon", "Raw fish/seafood", "Desserts/cafe", "Late-night snacks"},
		dailyAmount: amount{28000, 0},
		breakdown: []breakdownItem{
			{"Breakfast/brunch", amount{8000, 0}},
			{"Lunch (gukbap/milmyeon)", amount{9000, 0}},
			{"Dinner (raw fish/seafood)", amount{15000, 0}},
			{"Cafe/dessert", amount{6000, 0}},
		},
		tips: []string{
			"Favor alley restaurants recommended by locals",
			"Buy raw fish directly at Jagalchi Market",
			"Explore the Haeundae cafe street",
			"Experience Gwangalli late-night food culture",
		},
		recommendedSpots: []string{"Jagalchi Market", "Gukje Market", "Haeundae Cafe Street", "Gwangalli Beach"},
	},
	Sightseeing: {
		description: "Admission fees for major Busan attractions",
		items:       []string{"Museums/art galleries", "Cable car", "Observatory", "Theme park", "Hands-on activities"},
		dailyAmount: amount{15000, 12000},
		breakdown: []breakdownItem{
			{"Cable car (Songdo/Geumgang Park)", amount{10000, 8000}},
			{"Museums/art galleries", amount{4000, 3000}},
			{"Observatory", amount{2000, 0}},
			{"Hands-on activities", amount{5000, 0}},
		},
		tips: []string{
			"The youth pass gives 30% off cultural facilities",
			"Ride the cable car at sunset",
			"Make use of the many free attractions",
			"Take the city tour bus to save time",
		},
		recommendedSpots: []string{"Gamcheon Culture Village", "Taejongdae", "Haedong Yonggungsa", "Songdo Cable Car"},
	},
	Shopping: {
		description: "Souvenirs and shopping",
		items:       []string{"BIFF merchandise", "Busan specialties", "K-beauty", "Fashion", "Traditional souvenirs"},
		dailyAmount: amount{25000, 0},
		breakdown: []breakdownItem{
			{"BIFF souvenirs", amount{8000, 0}},
			{"Busan specialties", amount{10000, 0}},
			{"Cosmetics/beauty", amount{12000, 0}},
			{"Fashion items", amount{15000, 0}},
		},
		tips: []string{
			"Seomyeon underground mall has the lowest prices",
			"Prepare duty-free discount coupons in advance",
			"Gukje Market for traditional souvenirs",
			"Compare prices online before buying",
		},
		recommendedSpots: []string{"Seomyeon Underground Mall", "Gukje Market", "Shinsegae Centum City", "Lotte Department Store"},
	},
	Photo: {
		description: "Costs for taking memorable photos",
		items:       []string{"Instax film", "Photo booth", "Prints", "Photo props", "Drone rental"},
		dailyAmount: amount{12000, 0},
		breakdown: []breakdownItem{
			{"Instax film", amount{6000, 0}},
			{"Photo booth", amount{4000, 0}},
			{"Photo prints", amount{2000, 0}},
			{"Props/accessories", amount{3000, 0}},
		},
		tips: []string{
			"Use the golden hours at sunrise and sunset",
			"Bring enough film",
			"A power bank is a must",
			"Night view spots at Haeundae and Gwangan Bridge",
		},
		recommendedSpots: []string{"Gwangan Bridge", "Haeundae Beach", "Gamcheon Culture Village", "Taejongdae"},
	},
	Cafe: {
		description: "Busan mood cafe tour",
		items:       []string{"Signature drinks", "Desserts", "Beans/merchandise", "Cafe experiences"},
		dailyAmount: amount{15000, 0},
		breakdown: []breakdownItem{
			{"Drinks (2-3 cups)", amount{12000, 0}},
			{"Desserts", amount{8000, 0}},
			{"Beans/merchandise", amount{10000, 0}},
		},
		tips: []string{
			"Try local roastery cafes",
			"Order the signature desserts",
			"Look for ocean-view cafes",
			"Cafe interiors double as photo zones",
		},
		recommendedSpots: []string{"Haeundae Cafe Street", "Gwangalli Beachfront", "Songjeong Beach", "Yeongdo Cafe Village"},
	},
	Nightview: {
		description: "Busan night view tour",
		items:       []string{"Observatory admission", "Late-night snacks", "Drinks", "Transport"},
		dailyAmount: amount{18000, 0},
		breakdown: []breakdownItem{
			{"Observatory/view cafe", amount{8000, 0}},
			{"Late-night snacks", amount{12000, 0}},
			{"Drinks/alcohol", amount{10000, 0}},
			{"Night transport", amount{5000, 0}},
		},
		tips: []string{
			"Gwangan Bridge at night is a must",
			"Chicken and beer on the beach",
			"Take a taxi for late-night moves",
			"Install a night photography app beforehand",
		},
		recommendedSpots: []string{"Gwangan Bridge", "Busan Tower", "Hwangnyeongsan Observatory", "Marine City"},
	},
}
