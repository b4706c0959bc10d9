package sim

import "testing"

func TestCollectResults_EmptyRegistry(t *testing.T) {
	res := CollectResults(DefaultConfig(), NewRegistry())
	if res.FloodSuccess || res.FloodCoverage != 0 || res.DeviceCount != 0 {
		t.Errorf("empty registry: success=%t coverage=%g devices=%d, want all zero",
			res.FloodSuccess, res.FloodCoverage, res.DeviceCount)
	}
}

func TestCollectResults_PartialCoverage(t *testing.T) {
	// GIVEN four nodes of which three saw the flood
	env, medium, registry := newTestMedium(0.0, true, 0)
	for id := NodeID(1); id <= 4; id++ {
		addRadio(t, env, medium, registry, id, int(id), 0)
	}
	env.mustAfter(10, func() {
		for _, n := range registry.Nodes()[:3] {
			n.recordFloodBeacon(FloodBeacon{FloodID: "f"})
		}
	})
	env.Run()

	res := CollectResults(DefaultConfig(), registry)

	// THEN coverage is fractional and the run is not a success
	if res.FloodCoverage != 0.75 {
		t.Errorf("coverage: got %g, want 0.75", res.FloodCoverage)
	}
	if res.FloodSuccess {
		t.Error("partial coverage reported as success")
	}
	if res.CompletionTime != 0 {
		t.Errorf("completion time on failed flood: got %d, want 0", res.CompletionTime)
	}
}

func TestCollectResults_CompletionIsLastFirstReception(t *testing.T) {
	// GIVEN three nodes with first receptions at ticks 10, 30 and 20,
	// where the slowest node also hears a repeat later
	env, medium, registry := newTestMedium(0.0, true, 0)
	for id := NodeID(1); id <= 3; id++ {
		addRadio(t, env, medium, registry, id, int(id), 0)
	}
	nodes := registry.Nodes()
	env.mustAfter(10, func() { nodes[0].recordFloodBeacon(FloodBeacon{FloodID: "f"}) })
	env.mustAfter(20, func() { nodes[2].recordFloodBeacon(FloodBeacon{FloodID: "f"}) })
	env.mustAfter(30, func() { nodes[1].recordFloodBeacon(FloodBeacon{FloodID: "f"}) })
	env.mustAfter(90, func() { nodes[1].recordFloodBeacon(FloodBeacon{FloodID: "f"}) })
	env.Run()

	res := CollectResults(DefaultConfig(), registry)

	// THEN the flood succeeded and completion is the slowest first hit
	if !res.FloodSuccess {
		t.Fatal("full coverage not reported as success")
	}
	if res.CompletionTime != 30 {
		t.Errorf("completion time: got %d, want 30", res.CompletionTime)
	}
}

func TestCollectResults_SumsTransmissions(t *testing.T) {
	env, medium, registry := newTestMedium(0.0, true, 0)
	a := addRadio(t, env, medium, registry, 1, 0, 0)
	b := addRadio(t, env, medium, registry, 2, 5, 0)

	env.mustAfter(10, func() { a.Send(beaconFrame(a.ID(), "f1")) })
	env.mustAfter(200, func() { a.Send(beaconFrame(a.ID(), "f2")) })
	env.mustAfter(10, func() { b.Send(beaconFrame(b.ID(), "f3")) })
	env.Run()

	res := CollectResults(DefaultConfig(), registry)
	if res.TotalTransmissions != 3 {
		t.Errorf("total transmissions: got %d, want 3", res.TotalTransmissions)
	}
}

func TestCollectResults_CarriesRunParameters(t *testing.T) {
	cfg := Config{MaxTransmissions: 4, LossRate: 0.5, MaxHops: 2, GuardTime: 50, Seed: 9, Interference: false}
	res := CollectResults(cfg, NewRegistry())
	if res.MaxTransmissions != 4 || res.LossRate != 0.5 || res.MaxHops != 2 ||
		res.GuardTime != 50 || res.Seed != 9 {
		t.Errorf("results do not carry the run parameters: %+v", res)
	}
}
