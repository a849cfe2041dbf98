package models

// Entity names a collection held by the gateway.
type Entity string

const (
	EntityStudents  Entity = "students"
	EntityGroups    Entity = "groups"
	EntityStaff     Entity = "staff"
	EntityPayments  Entity = "payments"
	EntityContracts Entity = "contracts"
)

// EntitySource says where the authoritative copy of a collection lives.
type EntitySource string

const (
	SourceServer      EntitySource = "server"
	SourceClientCache EntitySource = "client_cache"
)

// Reconciliation describes how local state caught up after a mutation.
type Reconciliation string

const (
	ReconcileRefetch     Reconciliation = "refetch"
	ReconcileResync      Reconciliation = "resync"
	ReconcileLocalAppend Reconciliation = "local_append"
	ReconcileLocalUpdate Reconciliation = "local_update"
)

// Payments and contracts have no read endpoint yet. Flip an entry to SourceServer once the
// academy API exposes one and route its reconciliation through a refetch.
var entitySources = map[Entity]EntitySource{
	EntityStudents:  SourceServer,
	EntityGroups:    SourceServer,
	EntityStaff:     SourceServer,
	EntityPayments:  SourceClientCache,
	EntityContracts: SourceClientCache,
}

// SourceOf returns the source of truth for an entity.
func SourceOf(e Entity) EntitySource {
	if src, ok := entitySources[e]; ok {
		return src
	}
	return SourceServer
}

// EntitySources returns a copy of the full source-of-truth table.
func EntitySources() map[Entity]EntitySource {
	out := make(map[Entity]EntitySource, len(entitySources))
	for k, v := range entitySources {
		out[k] = v
	}
	return out
}
