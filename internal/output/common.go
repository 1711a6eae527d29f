package output

// PrimerTSVHeader is the canonical header row for primer tables.
// Keep this as the single source of truth; all writers should use it.
const PrimerTSVHeader = "id\tdirection\tseq\tselected\tscore\tprimer_length\tgc_ratio\tgc_clamp\tno_runs\tno_repeats\tmelting_temp\tself_dimerization\tsecondary_structure\tannealing_delta_g\tprimer_coverage\tprimer_specificity\tfailed"

// SubsetTSVHeader heads the coverage-subsets table.
const SubsetTSVHeader = "size\tcovered\tratio\toptimal\tprimers"

// TemplateTSVHeader heads the per-template coverage table.
const TemplateTSVHeader = "template_id\tgroup\tcovered\tprimers\tmm"
