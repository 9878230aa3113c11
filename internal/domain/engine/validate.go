package engine

// Validate checks that every declared dependency resolves to a registered
// engine and that no engine depends on itself. It reports every violation,
// not just the first, so startup diagnostics show the complete picture in
// one pass. The report order is deterministic: engines by id ascending,
// dependencies by id ascending within each engine.
//
// Validate never fails for a missing dependency; it only reports. The
// scheduler is the component that treats an unvalidated registry as fatal.
func Validate(r *Registry) []error {
	var errs []error
	for _, id := range r.ids {
		d := r.byID[id]
		for _, dep := range d.dependencies {
			switch {
			case dep == id:
				errs = append(errs, &SelfDependencyError{EngineID: id})
			default:
				if _, ok := r.byID[dep]; !ok {
					errs = append(errs, &UnknownDependencyError{
						EngineID:            id,
						MissingDependencyID: dep,
					})
				}
			}
		}
	}
	return errs
}
