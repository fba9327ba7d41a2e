package sim

import (
	"fmt"
	"strings"
)

// CustomerRecord follows one customer from arrival to departure.
type CustomerRecord struct {
	ArrivalTime  float64
	ServiceStart float64
}

// CustomerLedger holds every customer that has arrived but not yet departed:
// a FIFO line of those still waiting, plus a count of those in service whose
// records travel with their departure events.
//
// Matching is strict FIFO per customer: a departure consumes the record of the
// customer whose service ended, not simply the oldest outstanding arrival.
type CustomerLedger struct {
	waiting   []CustomerRecord
	inService int
}

// Record appends a customer arriving at time t to the back of the line.
func (l *CustomerLedger) Record(t float64) {
	l.waiting = append(l.waiting, CustomerRecord{ArrivalTime: t})
}

// Admit moves the oldest waiting customer into service at time now.
// Returns false if nobody is waiting.
func (l *CustomerLedger) Admit(now float64) (CustomerRecord, bool) {
	if len(l.waiting) == 0 {
		return CustomerRecord{}, false
	}
	rec := l.waiting[0]
	l.waiting = l.waiting[1:]
	rec.ServiceStart = now
	l.inService++
	return rec, true
}

// Discharge removes a customer leaving service. Panics if nobody is in service.
func (l *CustomerLedger) Discharge(rec CustomerRecord) {
	if l.inService <= 0 {
		panic(fmt.Sprintf("CustomerLedger.Discharge: no customer in service (arrived %v)", rec.ArrivalTime))
	}
	l.inService--
}

// Len returns the number of customers in the system (waiting + in service).
func (l *CustomerLedger) Len() int { return len(l.waiting) + l.inService }

// Waiting returns the number of customers not yet admitted to a server.
func (l *CustomerLedger) Waiting() int { return len(l.waiting) }

// InService returns the number of customers currently being served.
func (l *CustomerLedger) InService() int { return l.inService }

// Peek returns the oldest waiting customer without removing it.
func (l *CustomerLedger) Peek() (CustomerRecord, bool) {
	if len(l.waiting) == 0 {
		return CustomerRecord{}, false
	}
	return l.waiting[0], true
}

func (l *CustomerLedger) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, rec := range l.waiting {
		sb.WriteString(fmt.Sprint(rec.ArrivalTime))
		if i < len(l.waiting)-1 {
			sb.WriteString(" ")
		}
	}
	fmt.Fprintf(&sb, "] in-service=%d", l.inService)
	return sb.String()
}
