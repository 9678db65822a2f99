// Package types defines the vehicle record types, their validation and
// ordering rules, the Repository interface, and the standard errors for the
// garage collection manager.
package types
