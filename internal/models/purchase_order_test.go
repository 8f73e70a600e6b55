package models

import "testing"

func order(stage ProcessingStage) *PurchaseOrder {
	o := &PurchaseOrder{ProcessingStage: stage}
	o.Sync()
	return o
}

func TestStatusForStage(t *testing.T) {
	cases := []struct {
		stage ProcessingStage
		want  OrderStatus
	}{
		{StageOrderPlaced, OrderPending},
		{StageOrderConfirmed, OrderOrdered},
		{StageProcessing, OrderOrdered},
		{StagePacked, OrderOrdered},
		{StageOutForDelivery, OrderOrdered},
		{StageDelivered, OrderReceived},
		{StageCancelled, OrderCancelled},
	}
	for _, tc := range cases {
		if got := StatusForStage(tc.stage); got != tc.want {
			t.Fatalf("StatusForStage(%s) = %s, want %s", tc.stage, got, tc.want)
		}
	}
}

func TestReceive_FromNonTerminalStages(t *testing.T) {
	for _, stage := range []ProcessingStage{StageOrderPlaced, StageOrderConfirmed, StageProcessing, StagePacked, StageOutForDelivery} {
		o := order(stage)
		if err := o.Receive(); err != nil {
			t.Fatalf("Receive from %s: %v", stage, err)
		}
		if o.ProcessingStage != StageDelivered || o.Status != OrderReceived {
			t.Fatalf("Receive from %s: stage=%s status=%s", stage, o.ProcessingStage, o.Status)
		}
	}
}

func TestCancel_FromNonTerminalStages(t *testing.T) {
	o := order(StageProcessing)
	if err := o.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if o.ProcessingStage != StageCancelled || o.Status != OrderCancelled {
		t.Fatalf("Cancel: stage=%s status=%s", o.ProcessingStage, o.Status)
	}
}

func TestTerminalLock(t *testing.T) {
	for _, stage := range []ProcessingStage{StageDelivered, StageCancelled} {
		o := order(stage)
		if err := o.Receive(); err != ErrOrderTerminal {
			t.Fatalf("Receive on %s: got %v, want ErrOrderTerminal", stage, err)
		}
		if err := o.Cancel(); err != ErrOrderTerminal {
			t.Fatalf("Cancel on %s: got %v, want ErrOrderTerminal", stage, err)
		}
		if err := o.Advance(); err != ErrOrderTerminal {
			t.Fatalf("Advance on %s: got %v, want ErrOrderTerminal", stage, err)
		}
		if o.ProcessingStage != stage {
			t.Fatalf("terminal stage mutated: %s -> %s", stage, o.ProcessingStage)
		}
	}
}

func TestAdvance_WalksTheChain(t *testing.T) {
	o := order(StageOrderPlaced)
	want := []ProcessingStage{StageOrderConfirmed, StageProcessing, StagePacked, StageOutForDelivery, StageDelivered}
	for _, stage := range want {
		if err := o.Advance(); err != nil {
			t.Fatalf("Advance to %s: %v", stage, err)
		}
		if o.ProcessingStage != stage {
			t.Fatalf("Advance: got %s, want %s", o.ProcessingStage, stage)
		}
	}
	if err := o.Advance(); err != ErrOrderTerminal {
		t.Fatalf("Advance past DELIVERED: got %v, want ErrOrderTerminal", err)
	}
}

func TestDisplayForStage_CoversAllStages(t *testing.T) {
	for _, stage := range []ProcessingStage{
		StageOrderPlaced, StageOrderConfirmed, StageProcessing,
		StagePacked, StageOutForDelivery, StageDelivered, StageCancelled,
	} {
		d := DisplayForStage(stage)
		if d.Label == "" || d.Color == "" {
			t.Fatalf("stage %s has incomplete display %+v", stage, d)
		}
	}
	// Unknown stages stay renderable.
	d := DisplayForStage(ProcessingStage("MYSTERY"))
	if d.Label != "MYSTERY" {
		t.Fatalf("unknown stage label: got %q", d.Label)
	}
}
