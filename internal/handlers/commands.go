package handlers

// Command names, in the colon-delimited form the host bridge sends.
const (
	CmdProjectorCreate    = ":PROJECTOR:CREATE:"
	CmdProjectorDuplicate = ":PROJECTOR:DUPLICATE:"
	CmdProjectorRemove    = ":PROJECTOR:REMOVE:"
	CmdProjectorEdit      = ":PROJECTOR:EDIT:"
	CmdProjectorMove      = ":PROJECTOR:MOVE:"
	CmdProjectorAspect    = ":PROJECTOR:ASPECT:"
	CmdProjectorBlend     = ":PROJECTOR:BLEND:"
	CmdProjectorInfo      = ":PROJECTOR:INFO:"
	CmdProjectorList      = ":PROJECTOR:LIST:"

	CmdCollectionCreate   = ":COLLECTION:CREATE:"
	CmdCollectionDelete   = ":COLLECTION:DELETE:"
	CmdCollectionActive   = ":COLLECTION:ACTIVE:"
	CmdCollectionAssign   = ":COLLECTION:ASSIGN:"
	CmdCollectionUnassign = ":COLLECTION:UNASSIGN:"
	CmdCollectionMembers  = ":COLLECTION:MEMBERS:"
	CmdCollectionList     = ":COLLECTION:LIST:"

	CmdOverlapDetect = ":OVERLAP:DETECT:"
	CmdOverlapClear  = ":OVERLAP:CLEAR:"
	CmdOverlapBlend  = ":OVERLAP:BLEND:"

	CmdGroupAlign = ":GROUP:ALIGN:"
	CmdGroupGrid  = ":GROUP:GRID:"

	CmdProjectSave    = ":PROJECT:SAVE:"
	CmdProjectLoad    = ":PROJECT:LOAD:"
	CmdProjectBackups = ":PROJECT:BACKUPS:"
	CmdProjectRestore = ":PROJECT:RESTORE:"
)
