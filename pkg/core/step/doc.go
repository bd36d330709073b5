// Package step drives a tree one discrete, human-observable step at a time.
//
// A [Stepper] holds a list of pending values and inserts them the way a
// teacher would at a whiteboard: compare with the root, move left or right,
// compare again, and finally place the value in an empty slot. Each call to
// [Stepper.Next] performs exactly one of those steps and returns an [Event]
// describing it, including the status line a front end should display.
//
// New nodes are placed at positions planned from the complete pending list
// (see layout.Plan) so that nothing moves as later values arrive. Deletions
// and bound changes re-plan and re-lay-out the live tree.
//
// Steppers are not safe for concurrent use.
package step
