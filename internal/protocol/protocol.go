package protocol

// #region id
// ID identifies an intervention protocol. The engine only ever filters and
// recommends ids; descriptions and media live in the presentation catalog.
type ID string

const (
	BoxBreathing     ID = "box_breathing"
	NSDRLite         ID = "nsdr_lite"
	SuperVentilation ID = "super_ventilation"
	ActivationPrimer ID = "activation_primer"
	BufferClear      ID = "buffer_clear"
	GeneralPrep      ID = "general_prep"
	ReactionTest     ID = "reaction"
	MemoryTest       ID = "memory"
	FocusTest        ID = "focus"
)

// #endregion id

// #region category
// Category groups protocols by intent.
type Category string

const (
	CategoryRegulation  Category = "regulation"
	CategoryRecovery    Category = "recovery"
	CategoryActivation  Category = "activation"
	CategoryPreparation Category = "preparation"
	CategoryTest        Category = "cognitive_test"
)

// #endregion category

// #region entry
// Entry is one catalog record: id, category, and contraindication tags the
// gate's rules key off.
type Entry struct {
	ID                ID
	Category          Category
	Contraindications []string
}

// #endregion entry

// #region catalog
// Catalog is the built-in set of protocol records.
var Catalog = map[ID]Entry{
	BoxBreathing: {
		ID:       BoxBreathing,
		Category: CategoryRegulation,
	},
	NSDRLite: {
		ID:                NSDRLite,
		Category:          CategoryRecovery,
		Contraindications: []string{"event_imminent"},
	},
	SuperVentilation: {
		ID:                SuperVentilation,
		Category:          CategoryActivation,
		Contraindications: []string{"high_stress"},
	},
	ActivationPrimer: {
		ID:       ActivationPrimer,
		Category: CategoryActivation,
	},
	BufferClear: {
		ID:       BufferClear,
		Category: CategoryRegulation,
	},
	GeneralPrep: {
		ID:       GeneralPrep,
		Category: CategoryPreparation,
	},
	ReactionTest: {
		ID:                ReactionTest,
		Category:          CategoryTest,
		Contraindications: []string{"event_imminent", "post_failure", "high_stress"},
	},
	MemoryTest: {
		ID:                MemoryTest,
		Category:          CategoryTest,
		Contraindications: []string{"event_imminent", "event_soon", "post_failure", "short_sleep", "high_stress"},
	},
	FocusTest: {
		ID:                FocusTest,
		Category:          CategoryTest,
		Contraindications: []string{"event_imminent", "post_failure", "short_sleep", "high_stress"},
	},
}

// catalogOrder fixes a deterministic iteration order for the catalog.
var catalogOrder = []ID{
	BoxBreathing,
	NSDRLite,
	SuperVentilation,
	ActivationPrimer,
	BufferClear,
	GeneralPrep,
	ReactionTest,
	MemoryTest,
	FocusTest,
}

// CatalogIDs returns all catalog ids in deterministic order.
func CatalogIDs() []ID {
	ids := make([]ID, len(catalogOrder))
	copy(ids, catalogOrder)
	return ids
}

// #endregion catalog
