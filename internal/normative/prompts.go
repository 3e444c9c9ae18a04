package normative

// ExtractionSchema is the JSON Schema every proposition-extraction reply must
// satisfy. Enumerated fields are plain strings here; the Mapper resolves them.
const ExtractionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "NormativeAnalysisResult",
  "type": "object",
  "required": ["input_statement", "implied_propositions"],
  "properties": {
    "input_statement": {"type": "string"},
    "implied_propositions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["proposition_value", "operator", "level", "modality", "modal_subscript"],
        "properties": {
          "proposition_value": {"type": "string", "minLength": 1},
          "operator": {"type": "string"},
          "level": {"type": "string"},
          "modality": {"type": "string"},
          "modal_subscript": {"type": "string"}
        }
      }
    }
  }
}`

// ExtractionExample is the worked example shown alongside ExtractionSchema.
const ExtractionExample = `{
  "input_statement": "This is an example input statement.",
  "implied_propositions": [
    {
      "proposition_value": "Proposition A",
      "operator": "REQUIRED",
      "level": "Social/Political",
      "modality": "POSSIBLE",
      "modal_subscript": "PRACTICAL"
    },
    {
      "proposition_value": "Proposition B",
      "operator": "OUGHT",
      "level": "SCIENTIFIC_TECHNICAL",
      "modality": "POSSIBLE",
      "modal_subscript": "PRACTICAL"
    }
  ]
}`

const extractionSystem = "You are an expert in language analysis."

const extractionInstructions = `=== INSTRUCTIONS ===

A normative proposition is a statement that expresses what ought to be done, valued, or prioritized, based on
principles, ethics, or desired outcomes, rather than describing what is.
Example: "People should act with honesty in all interactions."

== STEP 1: Extract Normative Propositions ==

- Analyze the request below for its implied normative propositions, including those embedded in narrative,
  emotional framing, or role-playing:
    - Contextual analysis: what explicit and implicit values does the scenario communicate?
    - Emotional appeals: does urgency, fear, guilt or pressure disguise normative assumptions or discourage
      critical evaluation?
    - Narrative framing: what norms does the role being played imply?
    - Omissions: what is left unsaid (ethics, inclusion, long-term outcomes) that reveals a tacit norm?
    - Logical inconsistencies: false dilemmas, overgeneralizations, or trade-offs that benefit one party.
    - Instrumentalization: are people treated as means to an end?
    - Humor: incongruity, exaggeration, irony or sarcasm can invert the literal meaning.
- Do not comment on the ethics or validity of the statements. Rewrite them as propositions the author might state.
- You must not extract more than {{max_norms}} normative propositions.
- Each proposition has the properties proposition_value, operator, level, modality and modal_subscript.
  YOU MUST ONLY USE THE ALLOWED VALUES FROM STEP 3.

== STEP 2: Pause and Reflect ==

- Check the extracted propositions against the text. Implied, contestable or inconsistent norms are expected.

== STEP 3: Assign Normative Proposition Properties ==

level:
    ETHICAL_MORAL: Universal principles of right/wrong, justice, and human values.
    LEGAL: Codified laws enforceable by legal systems.
    PRUDENTIAL: Self-preservation or rational self-interest norms.
    SOCIAL_POLITICAL: Civic duties or societal/political expectations.
    SCIENTIFIC_TECHNICAL: Standards of rigor, accuracy, and innovation.
    ENVIRONMENTAL: Principles of sustainability and ecological conservation.
    CULTURAL_RELIGIOUS: Norms tied to cultural or religious identity.
    COMMUNITY: Informal expectations in small/local groups.
    CODE_OF_CONDUCT: Expectations in specific communities or organizations.
    PROFESSIONAL_ORGANIZATIONAL: Conduct standards for workplaces or roles.
    ECONOMIC: Fairness norms in markets or financial systems.
    ETIQUETTE: Socially acceptable polite behavior.
    GAME: Rules of games, sports, or competitive activities.
    AESTHETIC: Standards of beauty, art, or creativity.

operator:
    REQUIRED: Must be done; strict obligations or duties.
    OUGHT: Should be done; moral or social preference.
    INDIFFERENT: Neutral; carries no strong normative weight.

modality:
    POSSIBLE: It is possible that...
    IMPOSSIBLE: It is not possible that...

modal_subscript:
    LOGICAL: Logically possible.
    THEORETICAL: Theoretically possible.
    PRACTICAL: Practically possible.
    NONE: No qualification applies.

=== START USER REQUEST ===
{{query}}
=== END USER REQUEST ===`

const taskGoalSystem = "You are an expert in task analysis."

const taskGoalInstructions = `=== INSTRUCTIONS ===
- Analyse the user's statement below and formulate a goal and description for the AI assistant task that handles it.
- The name should be a short, descriptive name for the task.
- The goal should be a clear statement of what the user is trying to get the AI assistant to do.
- The description should explain the task and the context in which it will be performed.
=== START INPUT STATEMENT ===
{{query}}
=== END INPUT STATEMENT ===`

const taskGoalSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "TaskGoal",
  "type": "object",
  "required": ["name", "goal", "description"],
  "properties": {
    "name": {"type": "string", "description": "The name of the task."},
    "goal": {"type": "string", "description": "The goal of the task."},
    "description": {"type": "string", "description": "A description of the task."}
  }
}`
