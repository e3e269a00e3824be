package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "dreamhome/internal/log"
)

// timeLayout is fixed width so created_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: an in-memory database exists per connection, and sqlite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Properties. Nested groups are JSON documents; older rows may hold a
-- string location or a flat image list.
CREATE TABLE IF NOT EXISTS properties(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  property_type TEXT,
  price REAL,
  negotiable TEXT,
  description TEXT,
  availability_status TEXT,
  property_status TEXT,
  bhk TEXT,
  location_json TEXT,
  images_json TEXT,
  videos_json TEXT,
  amenities_json TEXT,
  features_json TEXT,
  personal_json TEXT,
  listed_by TEXT,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_properties_type       ON properties(property_type);
CREATE INDEX IF NOT EXISTS idx_properties_listed_by  ON properties(listed_by);
CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at);

-- Contact inquiries
CREATE TABLE IF NOT EXISTS inquiries(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact_no TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE RESTRICT,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inquiries_property ON inquiries(property_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedDemo inserts a demo account and a handful of listings, including two
// stored in the old flat shape. Safe to run on every start.
func SeedDemo(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM properties`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	applog.L().Info("[seed] inserting demo user and listings")

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT OR IGNORE INTO users(id,email,name,password_hash,created_at) VALUES(?,?,?,?,?)`,
		"u-demo", "demo@dreamhome.test", "Demo Owner", string(hash), formatTime(base))

	rows := []struct {
		id, title, typ, location, images, amenities, features string
		price                                                 float64
		listedBy                                              any
		at                                                    time.Duration
	}{
		{"p-villa", "Villa Heights", "Villa",
			`{"state":"Maharashtra","city":"Pune","locality":"Baner","address":"12 Hill Rd","pinCode":"411045","landmarks":""}`,
			`{"exterior_view":["uploads/images/villa-front.jpg"]}`,
			`{"parking":"Yes","lift":"No","bathrooms":"3"}`,
			`{"bhk":"4","furnishing":"Furnished","carpetArea":"2400"}`,
			18500000, "u-demo", 0},
		{"p-flat-legacy", "Sea View Flat", "Flat",
			`"Mumbai"`,
			`["uploads/images/flat-1.jpg","uploads/images/flat-2.jpg"]`,
			`{}`, `{}`,
			9200000, nil, time.Hour},
		{"p-plot", "Corner Plot", "Residential Land",
			`{"state":"Karnataka","city":"Mysuru","locality":"","address":"","pinCode":"","landmarks":""}`,
			`{}`,
			`{"boundaryWall":"Yes"}`,
			`{"areaUnit":"sq.ft","areaValue":"2400","plotFacing":"East","transactionType":"Resale"}`,
			3500000, "u-demo", 2 * time.Hour},
		{"p-office", "Tech Park Suite", "Office",
			`{"state":"Telangana","city":"Hyderabad","locality":"HITEC City","address":"","pinCode":"","landmarks":""}`,
			`{"others":["uploads/images/office.jpg"]}`,
			`{"internet":"Yes","pantry":"Shared"}`,
			`{"cabins":"3","workstations":"40"}`,
			7800000, "u-demo", 3 * time.Hour},
	}
	for _, r := range rows {
		tx.MustExec(`
			INSERT OR IGNORE INTO properties(
			  id,title,property_type,price,location_json,images_json,amenities_json,features_json,listed_by,created_at
			) VALUES(?,?,?,?,?,?,?,?,?,?)`,
			r.id, r.title, r.typ, r.price, r.location, r.images, r.amenities, r.features, r.listedBy,
			formatTime(base.Add(r.at)))
	}
	return tx.Commit()
}
