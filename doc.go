// Package planner is the composition root of the personal weekly planner.
//
// It connects the domain (pkg/planner) with the storage adapters
// (pkg/adapters/...) through the core.Repository port.
//
// The planner keeps two documents: "schedule-planner-data" holds the weekly
// schedule slots, the music playlist and the user's preferences, and
// "aesthetic-planner-notes" holds the notes. Both are loaded once, merged over
// defaults, and rewritten in full after every change.
//
// Usage:
//
//	svc, err := planner.New("./data",
//		planner.WithFormat("yaml"),
//		planner.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	p := planner.Open(ctx, svc)
//	slot, err := p.AddSlot(ctx, planner.SlotInput{
//		Day: "Monday", StartTime: "09:00", EndTime: "10:00", Topic: "Math",
//	})
package planner
