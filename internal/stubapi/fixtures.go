package stubapi

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/pawpals/pawpals/internal/client/models"
)

// seedUser pairs a plaintext password with its account; the password is
// hashed at server construction so fixtures stay readable.
type seedUser struct {
	password string
	user     models.User
}

func seedUsers() []seedUser {
	return []seedUser{
		{
			password: "woofwoof",
			user: models.User{
				ID:          "u-olivia",
				Email:       "olivia@example.com",
				DisplayName: "Olivia Tran",
				Role:        models.RoleOwner,
			},
		},
		{
			password: "grooming1",
			user: models.User{
				ID:          "u-marco",
				Email:       "marco@pawsnclaws.example",
				DisplayName: "Marco Ferreira",
				Role:        models.RoleSupplier,
			},
		},
		{
			password: "letmein",
			user: models.User{
				ID:          "u-admin",
				Email:       "admin@pawpals.example",
				DisplayName: "PawPals Admin",
				Role:        models.RoleAdmin,
			},
		},
	}
}

func hashPassword(plain string) []byte {
	// MinCost keeps seeding and test logins fast.
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

func seedSuburbs() []string {
	return []string{
		"Annandale",
		"Balmain",
		"Bondi",
		"Coogee",
		"Dulwich Hill",
		"Erskineville",
		"Glebe",
		"Marrickville",
		"Newtown",
		"Petersham",
		"Redfern",
		"Surry Hills",
	}
}

func seedSuppliers() []models.SupplierSummary {
	return []models.SupplierSummary{
		{UserID: "s-001", BusinessName: "Paws N Claws Grooming", Suburb: "Newtown", WebsiteURL: "https://pawsnclaws.example", Services: []string{"grooming"}},
		{UserID: "s-002", BusinessName: "Happy Tails Walking", Suburb: "Newtown", WebsiteURL: "https://happytails.example", Services: []string{"walking"}},
		{UserID: "s-003", BusinessName: "Bondi Bark Boarding", Suburb: "Bondi", WebsiteURL: "https://bondibark.example", Services: []string{"boarding", "daycare"}},
		{UserID: "s-004", BusinessName: "Inner West Pet Sitters", Suburb: "Marrickville", WebsiteURL: "https://iwps.example", Services: []string{"sitting"}},
		{UserID: "s-005", BusinessName: "The Groom Room", Suburb: "Surry Hills", WebsiteURL: "https://groomroom.example", Services: []string{"grooming"}},
		{UserID: "s-006", BusinessName: "Glebe Dog Daycare", Suburb: "Glebe", WebsiteURL: "https://glebedaycare.example", Services: []string{"daycare"}},
		{UserID: "s-007", BusinessName: "Coogee Canine Training", Suburb: "Coogee", WebsiteURL: "https://coogeecanine.example", Services: []string{"training"}},
		{UserID: "s-008", BusinessName: "Newtown Pet Hotel", Suburb: "Newtown", WebsiteURL: "https://newtownpethotel.example", Services: []string{"boarding"}},
		{UserID: "s-009", BusinessName: "Redfern Rover Walks", Suburb: "Redfern", WebsiteURL: "https://redfernrover.example", Services: []string{"walking"}},
		{UserID: "s-010", BusinessName: "Balmain Bath House", Suburb: "Balmain", WebsiteURL: "https://balmainbath.example", Services: []string{"grooming"}},
		{UserID: "s-011", BusinessName: "Petersham Puppy School", Suburb: "Petersham", WebsiteURL: "https://puppyschool.example", Services: []string{"training"}},
		{UserID: "s-012", BusinessName: "Erko Evening Walks", Suburb: "Erskineville", WebsiteURL: "https://erkowalks.example", Services: []string{"walking"}},
		{UserID: "s-013", BusinessName: "Annandale Animal Care", Suburb: "Annandale", WebsiteURL: "https://annandalecare.example", Services: []string{"sitting", "walking"}},
		{UserID: "s-014", BusinessName: "Dulwich Hill Doggos", Suburb: "Dulwich Hill", WebsiteURL: "https://dhdoggos.example", Services: []string{"daycare"}},
		{UserID: "s-015", BusinessName: "Surry Hills Sitters", Suburb: "Surry Hills", WebsiteURL: "https://shsitters.example", Services: []string{"sitting"}},
		{UserID: "s-016", BusinessName: "Marrickville Mutt Cuts", Suburb: "Marrickville", WebsiteURL: "https://muttcuts.example", Services: []string{"grooming"}},
		{UserID: "s-017", BusinessName: "Bondi Beach Walkies", Suburb: "Bondi", WebsiteURL: "https://bondiwalkies.example", Services: []string{"walking"}},
		{UserID: "s-018", BusinessName: "Glebe Point Grooming", Suburb: "Glebe", WebsiteURL: "https://glebepoint.example", Services: []string{"grooming"}},
		{UserID: "s-019", BusinessName: "Newtown Nail Trims", Suburb: "Newtown", WebsiteURL: "https://nailtrims.example", Services: []string{"grooming"}},
		{UserID: "s-020", BusinessName: "Coogee Overnight Care", Suburb: "Coogee", WebsiteURL: "https://coogeeovernight.example", Services: []string{"boarding", "sitting"}},
		{UserID: "s-021", BusinessName: "Redfern Ruff House", Suburb: "Redfern", WebsiteURL: "https://ruffhouse.example", Services: []string{"daycare"}},
		{UserID: "s-022", BusinessName: "Balmain Behaviour Lab", Suburb: "Balmain", WebsiteURL: "https://behaviourlab.example", Services: []string{"training"}},
	}
}
