package helper

import "github.com/MrFrederic/opensky/model"

// CalculateSpaces recomputes a load's occupancy from the live jump set,
// partitioned by the reserved flag. Pure: safe to call speculatively
// before committing a mutation. Remaining counts go negative when the
// load is overbooked, which is an accepted outcome (capacity is
// advisory, see AssignJumpToLoad).
func CalculateSpaces(load *model.Load, jumps []model.Jump) model.SpacesInfo {
	occupiedPublic := 0
	occupiedReserved := 0
	for _, jump := range jumps {
		if jump.Reserved {
			occupiedReserved++
		} else {
			occupiedPublic++
		}
	}

	total := load.Aircraft.MaxLoad
	return model.SpacesInfo{
		LoadId:            load.ID,
		TotalSpaces:       total,
		ReservedSpaces:    load.ReservedSpaces,
		OccupiedPublic:    occupiedPublic,
		OccupiedReserved:  occupiedReserved,
		RemainingPublic:   total - load.ReservedSpaces - occupiedPublic,
		RemainingReserved: load.ReservedSpaces - occupiedReserved,
	}
}
