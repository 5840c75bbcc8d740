// Package study ties the topic library, the progress store and the Leitner
// scheduler together: it answers "which cards are due for this profile" and
// records review outcomes.
//
// Scheduling state is kept inside the profile's progress document under the
// "leitner" key, so clients that store their own data in the same document
// keep it untouched.
package study
