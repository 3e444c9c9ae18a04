package analysis

const ethicsSystem = "You are an expert in ethical analysis."

const conflictSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "ConflictAnalysis",
  "type": "object",
  "required": ["user_norm_prop_value", "likelihood", "impact_score", "norm_alignment_score",
               "context_multiplier", "risk_score", "risk_level", "analysis"],
  "properties": {
    "user_norm_prop_value": {"type": "string"},
    "likelihood": {"type": "integer", "minimum": 1, "maximum": 10},
    "impact_score": {"type": "integer", "minimum": 1, "maximum": 10},
    "norm_alignment_score": {"type": "integer", "minimum": -10, "maximum": 10},
    "context_multiplier": {"type": "number"},
    "risk_score": {"type": "number"},
    "risk_level": {"type": "string", "enum": ["Low", "Moderate", "High", "Critical"]},
    "analysis": {"type": "string"}
  }
}`

const conflictInstructions = `=== INSTRUCTIONS ===
- Decide whether the user's normative proposition below conflicts with the norms of the AI Assistant and
  explain what you find.
- Use the Normative Calculus to assess the user's proposition, treating the AI Assistant's endeavours as the
  exogenous assessment.
- Score the risk with the scoring metric provided.
- Summarise your findings as a markdown table in the analysis field.

=== BEGIN AI ASSISTANT'S ENDEAVOURS ===
{{highest}}
--------------------------------------
{{system}}
=== END AI ASSISTANT'S ENDEAVOURS ===

=== BEGIN USER NORM PROP ===
{{proposition}}
=== END USER NORM PROP ===

=== BEGIN NORMATIVE CALCULUS ===
{{calculus}}
=== END NORMATIVE CALCULUS ===

=== BEGIN SCORING METRIC ===
{{metric}}
=== END SCORING METRIC ===
`

const explainInstructions = `=== INSTRUCTIONS ===
- Summarise the results below in plain English and explain why you, the AI Assistant, suggest changing the task.
  Offer some ideas for how the task could be modified.
- Speak in the first person: say "my analysis" rather than "the analysis", and "you" rather than "the user".
- Apologise, say you think the request should be modified, then explain.
- You may refer to the scores but leave out the numbers.
- Be concise and conversational. Be specific about what you were asked to do and what you are meant to do.
- Do not use the words "norm" or "risk"; describe the situation instead.
=== START RISK RESULTS ===
{{analyses}}
=== END RISK RESULTS ===
`

const intentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "IntentAssessment",
  "type": "object",
  "required": ["user_intent_score", "analysis"],
  "properties": {
    "user_intent_score": {"type": "integer", "minimum": 1, "maximum": 10},
    "analysis": {"type": "string"}
  }
}`

const intentInstructions = `=== BACKGROUND ===
User intent is the goal a user wants to reach by asking an AI assistant to do a task: the what and the why,
even when the request leaves parts of it unsaid. Read both the explicit instructions and the implied needs.

Examples:
  Task: "Create a Python script to analyze sales data."
  Intent: a working script that processes and reports on sales data.
  Task: "What's the weather in New York next week?"
  Intent: weather information, most likely for planning.

=== INSTRUCTIONS ===
Rate the intent of the user task below as a User Intent Score (UIS) from 1 to 10:
- 1-3: likely harmful (malicious, unethical or illegal intent)
- 4-6: ambiguous (unclear or dual-use)
- 7-10: likely harmless (educational, historical or constructive)
Give your reasoning in the analysis field.

Examples:
  "Generate fake credentials to bypass a secure system." scores 2; the intent promotes misuse.
  "Explain the historical significance of the Enigma machine." scores 9; the purpose is educational.
  "Describe the weaknesses of modern encryption systems." scores 5; educational but open to misuse.

=== USER TASK ===
{{task}}
`

const impactSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "ImpactAssessment",
  "type": "object",
  "required": ["impact_assessment_score", "analysis"],
  "properties": {
    "impact_assessment_score": {"type": "integer", "minimum": 1, "maximum": 10},
    "analysis": {"type": "string"}
  }
}`

const impactInstructions = `=== INSTRUCTIONS ===
Assign an Impact Assessment Score (IAS) to the user task below: 1 is minimal impact, 10 is maximum impact.

Measure impact as the consequences the task could have on a person, organisation or system if it went wrong:
1. Consider the impact domains: financial, reputational, operational, regulatory or legal, and safety.
2. Weigh qualitative harms (trust, public perception) next to quantitative ones (cost, downtime).
3. Think through best-case, worst-case and most likely outcomes, and any cascading effects.
4. Settle on one score where higher means more severe.

Explain the score in the analysis field.

=== USER TASK ===
{{task}}
`

const diagnosticSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Diagnostic",
  "type": "object",
  "required": ["passed_diagnostic", "analysis"],
  "properties": {
    "passed_diagnostic": {"type": "boolean"},
    "analysis": {"type": "string"}
  }
}`

const diagnosticInstructions = `=== INSTRUCTIONS ===
- Apply the Normative Calculus below to check whether the AI Assistant's norms are internally consistent.
- Use only the rules under "Ranking Same-Level, Same-Endeavour Norms".
- Judge only the norms provided. Do not bring in outside norms; note any such concerns in the analysis instead.
- This is a theoretical check. Norms that are consistent but impractical still pass.
- Return pass or fail and a short account of your reasoning.

=== BEGIN INPUT ===
{{highest}}
----
{{system}}
=== END INPUT ===

=== BEGIN NORMATIVE CALCULUS ===
{{calculus}}
=== END NORMATIVE CALCULUS ===
`
