package session

import (
	"context"

	"github.com/alexanderramin/compass/internal/domain"
)

// ConfirmMajor records major as the student's choice in both stores. Both
// locks are held (onboarding first) so no reader sees one store updated
// without the other. When both stores share a Persistence the two slots
// are written in one transaction.
func ConfirmMajor(ctx context.Context, ob *OnboardingStore, dash *DashboardStore, major string) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	dash.mu.Lock()
	defer dash.mu.Unlock()

	ob.setSelectedLocked(major)
	dash.state.SelectedMajor = major

	obWrite := slotWrite{key: OnboardingKey, version: OnboardingVersion, value: ob.payloadLocked()}
	dashWrite := slotWrite{key: DashboardKey, version: DashboardVersion, value: dash.state}
	if ob.persist == dash.persist {
		ob.persist.saveAll(ctx, obWrite, dashWrite)
		return
	}
	// Stores wired to different databases cannot share a transaction;
	// each writes its own slot.
	ob.persist.saveAll(ctx, obWrite)
	dash.persist.saveAll(ctx, dashWrite)
}

// SignOut clears every persisted slot, abandons onboarding progress, and
// resets the greeting and fun fact to their time-derived defaults.
func SignOut(ctx context.Context, ob *OnboardingStore, dash *DashboardStore) {
	ob.persist.eraseAll(ctx)
	if dash.persist != ob.persist {
		dash.persist.eraseAll(ctx)
	}

	ob.mu.Lock()
	ob.supersedeLocked()
	ob.state = domain.NewOnboardingState(ob.state.AvailableMajors)
	ob.mu.Unlock()

	dash.mu.Lock()
	defer dash.mu.Unlock()
	dash.state.Greeting = domain.GreetingFor(dash.clock().Hour(), "")
	dash.state.FunFact = ""
	dash.saveLocked(ctx)
}
