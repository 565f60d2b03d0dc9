package naming

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// SingleQueryName is the name of the root query field returning one record of an entity.
func SingleQueryName(entityName string) string {
	return strings.ToLower(entityName)
}

// MultiQueryName is the name of the root query field returning a page of records of an entity.
// Names the inflector leaves unchanged, such as metadata, get an s appended so they never collide
// with SingleQueryName.
func MultiQueryName(entityName string) string {
	single := SingleQueryName(entityName)
	plural := inflection.Plural(single)
	if plural == single {
		return single + "s"
	}
	return plural
}

// TableName is the backing-store collection holding the rows of an entity.
func TableName(entityName string) string {
	return MultiQueryName(entityName)
}
