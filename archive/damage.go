package archive

// Policy selects what the reader does when an entry turns out to be
// damaged — decoder raised an unknown-code fault, or the final hash
// doesn't match the one recorded in the header. Exactly one policy
// applies per invocation; if the caller doesn't select one, IgnoreDamage
// is the default — the least destructive choice when damage handling
// isn't explicitly requested.
type Policy int

const (
	// IgnoreDamage warns and keeps whatever was written, then continues
	// with the next entry.
	IgnoreDamage Policy = iota
	// ArchiveNotDamage warns, deletes every file unpacked so far this
	// invocation, and stops processing further entries.
	ArchiveNotDamage
	// FilesNotDamage warns, deletes only this entry's output, and
	// continues with the next entry.
	FilesNotDamage
)

// Warner receives one warning per damaged entry (or one for a whole
// archive rollback). cmd/lzwarchiver supplies a zap SugaredLogger, whose
// Warnf signature already matches this.
type Warner interface {
	Warnf(template string, args ...interface{})
}

// nopWarner discards warnings; used when the caller doesn't care to see
// them (e.g. tests exercising the policy machinery directly).
type nopWarner struct{}

func (nopWarner) Warnf(string, ...interface{}) {}
