package sim

// DemoScene returns the scene used when no scene file is configured: an
// editor world and a play-in-editor world with two local players.
func DemoScene() Scene {
	return Scene{
		Name: "demo",
		Engine: []SubsystemSpec{
			{Class: "UAssetEditorSubsystem", Module: "UnrealEd"},
			{Class: "UEditorActorSubsystem", Module: "UnrealEd"},
			{Class: "UImportSubsystem", Module: "UnrealEd"},
			{Class: "ULevelEditorSubsystem", Module: "LevelEditor"},
			{Class: "UTimecodeSynchronizerSubsystem", Module: "TimecodeSynchronizer"},
			{Class: "UTelemetryUploadSubsystem", Module: "Arena", Game: true},
		},
		GameInstance: []SubsystemSpec{
			{Class: "UCommonUIActionRouterBase", Name: "UI Action Router", Module: "CommonUI"},
			{Class: "UOnlineSessionSubsystem", Module: "OnlineSubsystemUtils"},
			{Class: "UArenaMatchmakingSubsystem", Module: "Arena", Game: true},
			{Class: "UArenaSaveGameSubsystem", Module: "Arena", Game: true},
		},
		Worlds: []WorldSpec{
			{
				Name: "EditorWorld",
				Subsystems: []SubsystemSpec{
					{Class: "UWorldPartitionSubsystem", Module: "Engine"},
					{Class: "UNavigationSystemV1", Name: "Navigation System", Module: "NavigationSystem"},
					{Class: "UAudioGameplayVolumeSubsystem", Module: "AudioGameplayVolume"},
				},
			},
			{
				Name: "PIE_Arena",
				Subsystems: []SubsystemSpec{
					{Class: "UWorldPartitionSubsystem", Module: "Engine"},
					{Class: "UNavigationSystemV1", Name: "Navigation System", Module: "NavigationSystem"},
					{Class: "UAISubsystem", Module: "AIModule"},
					{Class: "UArenaSpawnSubsystem", Module: "Arena", Game: true},
					{Class: "UArenaScoreSubsystem", Module: "Arena", Game: true},
				},
				Players: []PlayerSpec{
					{
						Name: "Player0",
						Subsystems: []SubsystemSpec{
							{Class: "UEnhancedInputLocalPlayerSubsystem", Module: "EnhancedInput"},
							{Class: "UArenaHUDSubsystem", Module: "Arena", Game: true},
						},
					},
					{
						Name: "Player1",
						Subsystems: []SubsystemSpec{
							{Class: "UEnhancedInputLocalPlayerSubsystem", Module: "EnhancedInput"},
							{Class: "UArenaHUDSubsystem", Module: "Arena", Game: true},
						},
					},
				},
			},
		},
	}
}
