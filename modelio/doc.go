// Package modelio reads community models from their YAML description.
//
// The document shape:
//
//	id: gut
//	members:
//	  - id: a
//	    abundance: 0.5
//	  - id: medium
//	    virtual: true
//	reactions:
//	  - id: ex_glc_a
//	    member: a
//	    lower: -10
//	    upper: 0
//	constraints:
//	  - name: objective_a
//	    coefficients: {growth_a: 1, ex_glc_a: 0.1}
//	    eq: 0
//	  - name: community_growth
//	    coefficients: {community_objective: 1, growth_a: -0.5, growth_b: -0.5}
//	    eq: 0
//
// Members implicitly get a growth_<id> reaction with bounds [0, +Inf);
// reaction bounds default to [0, +Inf) and constraint bounds to
// (-Inf, +Inf) unless given (eq pins both). The decoded model is validated
// before being returned.
package modelio
