package service

import (
	"testing"

	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/models"
)

func TestPickupVisibility(t *testing.T) {
	recyclerID := uint(7)
	pickup := &models.Pickup{UserID: 3, RecyclerID: &recyclerID}

	owner := Actor{ID: 3, Role: constants.RoleUser}
	assigned := Actor{ID: 7, Role: constants.RoleRecycler}
	otherUser := Actor{ID: 4, Role: constants.RoleUser}
	otherRecycler := Actor{ID: 8, Role: constants.RoleRecycler}
	admin := Actor{ID: 1, Role: constants.RoleAdmin}

	if !owner.CanViewPickup(pickup) {
		t.Fatalf("owner should view own pickup")
	}
	if !assigned.CanViewPickup(pickup) {
		t.Fatalf("assigned recycler should view pickup")
	}
	if !admin.CanViewPickup(pickup) {
		t.Fatalf("admin should view any pickup")
	}
	if otherUser.CanViewPickup(pickup) {
		t.Fatalf("unrelated user should not view pickup")
	}
	if otherRecycler.CanViewPickup(pickup) {
		t.Fatalf("unassigned recycler should not view pickup")
	}
}

func TestAssignedRecyclerRequiresRole(t *testing.T) {
	recyclerID := uint(3)
	pickup := &models.Pickup{UserID: 3, RecyclerID: &recyclerID}

	// 同一 ID 但角色是普通用户时不算指派回收员
	ownerSameID := Actor{ID: 3, Role: constants.RoleUser}
	if ownerSameID.IsAssignedTo(pickup) {
		t.Fatalf("owner without recycler role must not count as assigned")
	}
	if !ownerSameID.CanViewPickup(pickup) {
		t.Fatalf("owner should still view own pickup")
	}
}

func TestSchedulePermission(t *testing.T) {
	pickup := &models.Pickup{UserID: 3}
	if (Actor{ID: 3, Role: constants.RoleUser}).CanSchedulePickup(pickup) {
		t.Fatalf("owner must not schedule")
	}
	if (Actor{ID: 7, Role: constants.RoleRecycler}).CanSchedulePickup(pickup) {
		t.Fatalf("recycler must not schedule")
	}
	if !(Actor{ID: 1, Role: constants.RoleAdmin}).CanSchedulePickup(pickup) {
		t.Fatalf("admin must schedule")
	}
}

func TestCompletePermission(t *testing.T) {
	recyclerID := uint(7)
	pickup := &models.Pickup{UserID: 3, RecyclerID: &recyclerID}

	if (Actor{ID: 3, Role: constants.RoleUser}).CanCompletePickup(pickup) {
		t.Fatalf("owner must not complete")
	}
	if (Actor{ID: 8, Role: constants.RoleRecycler}).CanCompletePickup(pickup) {
		t.Fatalf("unassigned recycler must not complete")
	}
	if !(Actor{ID: 7, Role: constants.RoleRecycler}).CanCompletePickup(pickup) {
		t.Fatalf("assigned recycler must complete")
	}
	if !(Actor{ID: 1, Role: constants.RoleAdmin}).CanCompletePickup(pickup) {
		t.Fatalf("admin must complete")
	}
}

func TestRatePermission(t *testing.T) {
	pickup := &models.Pickup{UserID: 3}
	if !(Actor{ID: 3, Role: constants.RoleUser}).CanRatePickup(pickup) {
		t.Fatalf("owner must rate")
	}
	if (Actor{ID: 1, Role: constants.RoleAdmin}).CanRatePickup(pickup) {
		t.Fatalf("admin must not rate on behalf of owner")
	}
}

func TestRedeemPermission(t *testing.T) {
	reward := &models.Reward{UserID: 3}
	if !(Actor{ID: 3, Role: constants.RoleUser}).CanRedeemReward(reward) {
		t.Fatalf("beneficiary must redeem own reward")
	}
	if (Actor{ID: 4, Role: constants.RoleUser}).CanRedeemReward(reward) {
		t.Fatalf("other user must not redeem")
	}
}
