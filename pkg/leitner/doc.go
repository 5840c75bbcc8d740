// Package leitner implements the Leitner-box spaced-repetition scheduler used
// by the study view.
//
// Every card sits in one of four boxes. A correct answer promotes the card one
// box (capped at the last box); a wrong answer sends it back to the first box.
// Each box has a review interval, and a card becomes due again once the
// interval of its box has elapsed since its last review:
//
//	box one   due immediately
//	box two   1 day
//	box three 3 days
//	box four  7 days
//
// Cards that have never been reviewed are in box one and due now.
package leitner
