// Package output renders command results as YAML or JSON.
//
// # Output Types
//
//   - ExtractOutput: methods isolated from a Java file (jdkmig extract)
//   - ParamsOutput: the parameter list of one method text (jdkmig params)
//   - DatasetOutput: a summary listing of dataset pairs (jdkmig results)
//
// # Density Modes
//
// Three density levels control how much of each method is printed:
//
//   - Sparse: name and location only
//     Example: toString @ Sample.java:4-6
//
//   - Medium (default): adds length, parameters and the fingerprint
//
//   - Dense: adds the normalized source text
package output
