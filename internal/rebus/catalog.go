package rebus

// Category tags a semantic fragment of a puzzle answer. Hints may name the
// category, never the answer itself.
type Category string

const (
	CategoryFood     Category = "FOOD"
	CategoryDrink    Category = "DRINK"
	CategoryActivity Category = "ACTIVITY"
	CategoryPlace    Category = "PLACE"
	CategoryVibe     Category = "VIBE"
	CategoryTime     Category = "TIME"
)

// Part is one semantic fragment of a puzzle's answer. Keywords are the
// accepted matches; NearMisses are topically related wrong guesses that get
// acknowledged without counting as solved, so they must never overlap with
// Keywords. Hint describes what the part is without naming it.
type Part struct {
	Tag        Category
	Keywords   []string
	NearMisses []string
	Hint       string
}

// Puzzle is an immutable catalog entry. FullAnswer is never sent to clients.
type Puzzle struct {
	ID          int
	FullAnswer  string
	Description string
	Parts       []Part
}

// Catalog holds the five seasonal puzzles.
var Catalog = []Puzzle{
	{
		ID:          1,
		FullAnswer:  "Pizza, øl og konkurranse på Oslo bowling",
		Description: "Pizza-emoji, øl-emoji, konkurs-ransel-bildet, Oslo, og bowling-delen",
		Parts: []Part{
			{Tag: CategoryFood, Keywords: []string{"pizza"}, NearMisses: []string{"taco", "burger"}, Hint: "noe man spiser, ofte delt i biter"},
			{Tag: CategoryDrink, Keywords: []string{"øl"}, NearMisses: []string{"brus", "cider"}, Hint: "noe man drikker, ofte i glass"},
			{Tag: CategoryActivity, Keywords: []string{"konkurranse"}, NearMisses: []string{"quiz", "turnering"}, Hint: "noe der man måler seg mot andre eller spiller mot noen"},
			{Tag: CategoryPlace, Keywords: []string{"oslo"}, NearMisses: []string{"bergen", "trondheim"}, Hint: "en kjent by og hovedstad"},
			{Tag: CategoryPlace, Keywords: []string{"bowling"}, NearMisses: []string{"dart", "biljard"}, Hint: "et sted der kuler ruller og poeng telles"},
		},
	},
	{
		ID:          2,
		FullAnswer:  "Helaften med vin og tartar på bislett",
		Description: "Helmelk, julaften, vin, tyv som tar, biceps og Lett-restaurant",
		Parts: []Part{
			{Tag: CategoryTime, Keywords: []string{"helaften"}, Hint: "noe som varer hele kvelden"},
			{Tag: CategoryDrink, Keywords: []string{"vin"}, NearMisses: []string{"champagne"}, Hint: "noe som ofte serveres i glass til mat"},
			{Tag: CategoryFood, Keywords: []string{"tartar"}, NearMisses: []string{"biff", "carpaccio"}, Hint: "en rett laget av noe rått, ofte delt i små biter"},
			{Tag: CategoryPlace, Keywords: []string{"bislett"}, NearMisses: []string{"frogner", "majorstuen"}, Hint: "et område i byen, kjent for idrett og trening"},
		},
	},
	{
		ID:          3,
		FullAnswer:  "Fransk eventyrlig michelin opplevelse på mon oncl",
		Description: "Frankrike-flagg, eventyr, Michelle Obama, Lars Monsen, og onkel",
		Parts: []Part{
			{Tag: CategoryVibe, Keywords: []string{"fransk"}, NearMisses: []string{"italiensk"}, Hint: "noe med utenlandsk preg, ofte assosiert med mat og kultur"},
			{Tag: CategoryVibe, Keywords: []string{"eventyrlig"}, NearMisses: []string{"magisk"}, Hint: "noe som føles spesielt, nesten som et eventyr"},
			{Tag: CategoryVibe, Keywords: []string{"michelin"}, NearMisses: []string{"gourmet"}, Hint: "noe som handler om svært høy kvalitet på mat"},
			{Tag: CategoryPlace, Keywords: []string{"mon"}, Hint: "første del av et navn, bygget ved å fjerne noe"},
			{Tag: CategoryPlace, Keywords: []string{"oncl"}, NearMisses: []string{"onkel"}, Hint: "andre del av navnet, uttales som et familiemedlem"},
		},
	},
	{
		ID:          4,
		FullAnswer:  "Dagstur øst for Oslo med spa og velvære på the Well",
		Description: "Dagsfylla, turmat, kompass øst, Oslo, spade, Brønnøya Vel og værmelding",
		Parts: []Part{
			{Tag: CategoryTime, Keywords: []string{"dagstur"}, NearMisses: []string{"helgetur"}, Hint: "en kort tur som ikke varer over natten"},
			{Tag: CategoryPlace, Keywords: []string{"øst"}, NearMisses: []string{"vest"}, Hint: "en retning, vist med kompass eller pil"},
			{Tag: CategoryPlace, Keywords: []string{"oslo"}, Hint: "byen man reiser fra"},
			{Tag: CategoryActivity, Keywords: []string{"spa"}, NearMisses: []string{"massasje", "badstue"}, Hint: "noe som handler om ro, varme og avslapning"},
			{Tag: CategoryVibe, Keywords: []string{"velvære"}, NearMisses: []string{"avslapning"}, Hint: "noe som handler om å føle seg bra"},
			{Tag: CategoryPlace, Keywords: []string{"well"}, NearMisses: []string{"brønn"}, Hint: "et sted med engelsk navn, knyttet til avslapning"},
		},
	},
	{
		ID:          5,
		FullAnswer:  "En sliten søndag på den gule måke",
		Description: "Jenny (pen), Nissene i skjul, Søndag-serien og gul måke",
		Parts: []Part{
			{Tag: CategoryTime, Keywords: []string{"søndag"}, NearMisses: []string{"lørdag"}, Hint: "en dag i helgen"},
			{Tag: CategoryVibe, Keywords: []string{"sliten"}, NearMisses: []string{"trøtt"}, Hint: "følelsen av å være trøtt eller ferdig med uka"},
			{Tag: CategoryPlace, Keywords: []string{"måke"}, NearMisses: []string{"fugl"}, Hint: "et dyr man ofte ser ved sjøen, her brukt symbolsk"},
		},
	},
}

// Find returns the catalog puzzle with the given id.
func Find(id int) (Puzzle, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Puzzle{}, false
}

// SlotCount is the number of fixed progress slots; one per catalog puzzle.
const SlotCount = 5
