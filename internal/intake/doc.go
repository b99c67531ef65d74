package intake

// Package intake turns files offered by drag-drop, the file picker or the CLI
// into validated SelectedImage values. Validation checks the declared media
// type first and the size second; nothing here touches the network.
