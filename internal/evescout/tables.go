package evescout

import (
	"response-mapper/internal/mapping"
)

// ConnectionTableName is the entity type of ConnectionTable.
const ConnectionTableName = "connection"

// ConnectionTable maps one EVE Scout signature to a connection.
//
// in_system_name and updated_at are declared twice: the system name is both
// the connection name and the target name, the update time both the state
// time and the connection's own.
var ConnectionTable = mapping.MustTable(ConnectionTableName, []mapping.Entry{
	mapping.Field("id", mapping.Identity()),
	mapping.Field("signature_type", mapping.Rename("type")),
	mapping.Field("in_system_name", mapping.Rename("name")),
	mapping.Field("completed", mapping.Nest("state", "name")),
	mapping.Field("updated_at", mapping.Nest("state", "updated")),

	// Thera or Turnur side
	mapping.Field("out_system_id", mapping.Nest("source", "id")),
	mapping.Field("out_system_name", mapping.Nest("source", "name")),
	mapping.Field("out_signature", mapping.Nest("sourceSignature", "name")),

	// k-space side
	mapping.Field("in_system_id", mapping.Nest("target", "id")),
	mapping.Field("in_system_name", mapping.Nest("target", "name")),
	mapping.Field("in_signature", mapping.Nest("targetSignature", "name")),

	mapping.Field("expires_at", mapping.Nest("wormhole", "estimatedEol")),

	mapping.Field("created_at", mapping.Rename("created")),
	mapping.Field("updated_at", mapping.Rename("updated")),

	mapping.Field("created_by_id", mapping.Nest("character", "id")),
	mapping.Field("created_by_name", mapping.Nest("character", "name")),
})

// Tables returns a catalog of the package's tables.
func Tables() *mapping.Catalog {
	c, err := mapping.NewCatalog(ConnectionTable)
	if err != nil {
		panic(err)
	}

	return c
}
