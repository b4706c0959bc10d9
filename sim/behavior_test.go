package sim

import "testing"

// addSensor registers and starts a sensor node with the relay parameters
// under test.
func addSensor(t *testing.T, env *Scheduler, medium *Medium, registry *Registry, id NodeID, x, y, maxTx int) *Node {
	t.Helper()
	n := NewNode(env, medium, NewSensorBehavior(), NodeConfig{
		ID: id, X: x, Y: y, MaxTransmissions: maxTx,
		GuardTime: 100, TxRange: DefaultTxRange, Channel: DefaultChannel,
	})
	if err := registry.AddNode(n); err != nil {
		t.Fatalf("AddNode(%d): %v", id, err)
	}
	n.Start()
	return n
}

func TestSensor_RelaysFirstSeenBeaconMaxTransmissionsTimes(t *testing.T) {
	// GIVEN a source, a sensor relaying twice, and a listener only the
	// sensor can reach, with zero loss
	env, medium, registry := newTestMedium(0.0, true, 0)
	source := addRadio(t, env, medium, registry, 1, 0, 0)
	sensor := addSensor(t, env, medium, registry, 2, 1, 0, 2)
	listener := addRadio(t, env, medium, registry, 3, 2, 0)

	// WHEN the source floods once at tick 10
	env.mustAfter(10, func() { _ = medium.Send(beaconFrame(source.ID(), "flood-a"), source.ID()) })
	env.Run()

	// THEN the sensor retransmitted guard-spaced, at ticks 110 and 210
	if sensor.TxCount() != 2 {
		t.Errorf("sensor tx count: got %d, want 2", sensor.TxCount())
	}
	if listener.inbox.Len() != 2 {
		t.Errorf("listener inbox: got %d frames, want 2", listener.inbox.Len())
	}
}

func TestSensor_IgnoresRepeatBeacons(t *testing.T) {
	// GIVEN a sensor that relays once per flood
	env, medium, registry := newTestMedium(0.0, true, 0)
	source := addRadio(t, env, medium, registry, 1, 0, 0)
	sensor := addSensor(t, env, medium, registry, 2, 1, 0, 1)

	// WHEN the same flood arrives twice, well apart
	env.mustAfter(10, func() { _ = medium.Send(beaconFrame(source.ID(), "flood-a"), source.ID()) })
	env.mustAfter(500, func() { _ = medium.Send(beaconFrame(source.ID(), "flood-a"), source.ID()) })
	env.Run()

	// THEN the repeat triggered no second relay schedule
	if sensor.TxCount() != 1 {
		t.Errorf("sensor tx count: got %d, want 1", sensor.TxCount())
	}
	// both receptions were still booked
	if got := len(sensor.FloodTimes()["flood-a"]); got != 2 {
		t.Errorf("recorded receptions: got %d, want 2", got)
	}
}

func TestSensor_RelaySpacing_IsGuardTime(t *testing.T) {
	// GIVEN a sensor relaying three times into a started observer
	env, medium, registry := newTestMedium(0.0, true, 0)
	source := addRadio(t, env, medium, registry, 1, 0, 0)
	addSensor(t, env, medium, registry, 2, 1, 0, 3)
	observer := &recordingBehavior{}
	obs := NewNode(env, medium, observer, NodeConfig{
		ID: 3, X: 2, Y: 0, GuardTime: 100, TxRange: DefaultTxRange, Channel: DefaultChannel,
	})
	if err := registry.AddNode(obs); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	obs.Start()

	env.mustAfter(10, func() { _ = medium.Send(beaconFrame(source.ID(), "flood-a"), source.ID()) })
	env.Run()

	// THEN each relay lands one guard interval after the previous
	want := []Tick{110, 210, 310}
	if len(observer.ticks) != len(want) {
		t.Fatalf("observer saw %d relays at %v, want %d", len(observer.ticks), observer.ticks, len(want))
	}
	for i, ts := range observer.ticks {
		if ts != want[i] {
			t.Errorf("relay %d at tick %d, want %d", i, ts, want[i])
		}
	}
}

func TestSink_TriggersFloodAfterStartDelay(t *testing.T) {
	// GIVEN a sink with one relay transmission and a bare listener
	env, medium, registry := newTestMedium(0.0, true, 0)
	rng := NewPartitionedRNG(42)
	sink := NewNode(env, medium, NewSinkBehavior(rng.ForSubsystem(SubsystemFloodID)), NodeConfig{
		ID: 1, X: 0, Y: 0, MaxTransmissions: 1,
		GuardTime: 100, TxRange: DefaultTxRange, Channel: DefaultChannel,
	})
	if err := registry.AddNode(sink); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	listener := addRadio(t, env, medium, registry, 2, 1, 0)
	sink.Start()
	env.Run()

	// THEN the sink sent the trigger plus one relay, counts its own flood
	// as seen, and both transmissions reached the listener
	if sink.TxCount() != 2 {
		t.Errorf("sink tx count: got %d, want 2", sink.TxCount())
	}
	if sink.FloodCount() != 1 {
		t.Errorf("sink flood count: got %d, want 1", sink.FloodCount())
	}
	if listener.inbox.Len() != 2 {
		t.Errorf("listener inbox: got %d frames, want 2", listener.inbox.Len())
	}
	// the trigger at 100, the relay at 200, and the relay's radio unlock
	// at 300 are the last events on the queue
	if env.Now() != floodStartDelay+200 {
		t.Errorf("run ended at tick %d, want %d", env.Now(), floodStartDelay+200)
	}
}

func TestSink_FloodIDsReproducibleAcrossRuns(t *testing.T) {
	// GIVEN two identical single-node runs with the same seed
	run := func() string {
		env, medium, registry := newTestMedium(0.0, true, 0)
		rng := NewPartitionedRNG(7)
		sink := NewNode(env, medium, NewSinkBehavior(rng.ForSubsystem(SubsystemFloodID)), NodeConfig{
			ID: 1, GuardTime: 100, TxRange: DefaultTxRange, Channel: DefaultChannel,
		})
		if err := registry.AddNode(sink); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
		sink.Start()
		env.Run()
		for id := range sink.FloodTimes() {
			return id
		}
		return ""
	}

	first, second := run(), run()
	if first == "" || first != second {
		t.Errorf("flood ids differ across identically seeded runs: %q vs %q", first, second)
	}
}
