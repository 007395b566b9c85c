// Package command maps implementation class names found in package
// configuration to Go command implementations.
//
// Implementations register a Factory under their class name from an init
// function. The merged "commands" configuration refers to those class
// names; a name nothing registered fails the dispatcher build.
package command
