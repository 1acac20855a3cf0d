package config

// DefaultNames are the fifty most common US first names, searched for when
// no names are configured.
//
//nolint:gochecknoglobals // Read-only default list.
var DefaultNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Richard",
	"Charles", "Joseph", "Thomas", "Christopher", "Daniel", "Paul", "Mark", "Donald", "George", "Kenneth",
	"Steven", "Edward", "Brian", "Ronald", "Anthony", "Kevin", "Jason", "Matthew", "Gary", "Timothy", "Jose",
	"Larry", "Jeffrey", "Frank", "Scott", "Eric", "Stephen", "Andrew", "Raymond", "Gregory", "Joshua", "Jerry",
	"Dennis", "Walter", "Patrick", "Peter", "Harold", "Douglas", "Henry", "Carl", "Arthur", "Ryan", "Roger",
}
